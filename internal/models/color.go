package models

import "time"

// Color is a merchandise color swatch. The photo is set only through the
// media pipeline.
type Color struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Hex       string    `db:"hex" json:"hex"`
	PhotoURL  *string   `db:"photo_url" json:"photo_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
