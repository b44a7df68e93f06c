package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
}

type result struct {
	Target   target
	Status   int
	Duration time.Duration
	Error    error
}

// defaultTargets covers the unauthenticated read surface; it is enough to
// prove routing, database and blob wiring after a deploy.
var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/health", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/ready", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/events", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/fundraising", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/announcements", Expect: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/colors", Expect: http.StatusOK, Critical: false},
}

func main() {
	var (
		base        string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "Portal API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON targets file overriding the defaults")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	failures := 0

	for _, t := range targets {
		res := probe(client, base, t)
		status := "ok"
		if res.Error != nil {
			status = "error: " + res.Error.Error()
		} else if res.Status != t.Expect {
			status = fmt.Sprintf("unexpected status %d (want %d)", res.Status, t.Expect)
		}
		fmt.Printf("%-6s %-40s %-10s %s\n", t.Method, t.Path, res.Duration.Round(time.Millisecond), status)
		if status != "ok" && t.Critical {
			failures++
		}
	}

	if failures > 0 {
		fmt.Printf("\n%d critical probe(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nall critical probes passed")
}

func probe(client *http.Client, base string, t target) result {
	req, err := http.NewRequest(t.Method, base+t.Path, nil)
	if err != nil {
		return result{Target: t, Error: err}
	}
	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return result{Target: t, Duration: duration, Error: err}
	}
	defer resp.Body.Close()
	return result{Target: t, Status: resp.StatusCode, Duration: duration}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var targets []target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return targets, nil
}
