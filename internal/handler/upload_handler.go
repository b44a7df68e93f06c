package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/service"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
	"github.com/studentaffairs/org-portal-api/pkg/response"
)

// UploadHandler exposes the two-phase media publish endpoints.
type UploadHandler struct {
	media       *service.MediaService
	metrics     *service.MetricsService
	maxFileSize int64
}

// NewUploadHandler constructs an upload handler.
func NewUploadHandler(media *service.MediaService, metrics *service.MetricsService, maxFileSize int64) *UploadHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 << 20
	}
	return &UploadHandler{media: media, metrics: metrics, maxFileSize: maxFileSize}
}

// EventPoster godoc
// @Summary Upload event poster
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Event ID"
// @Param file formData file true "Poster image"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/poster [post]
func (h *UploadHandler) EventPoster(c *gin.Context) {
	h.publishSingle(c, service.MediaEventPoster, "id")
}

// EventQR godoc
// @Summary Upload event payment QR
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Event ID"
// @Param file formData file true "QR image"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/qr [post]
func (h *UploadHandler) EventQR(c *gin.Context) {
	h.publishSingle(c, service.MediaEventQR, "id")
}

// EventPhotos godoc
// @Summary Upload event gallery photos
// @Description Each file is published independently; partial success is reported per file
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Event ID"
// @Param files formData file true "Photos"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/photos [post]
func (h *UploadHandler) EventPhotos(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid multipart form"))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "at least one file is required"))
		return
	}

	files := make([]service.MediaFile, 0, len(headers))
	for _, header := range headers {
		file, err := h.readFile(header)
		if err != nil {
			response.Error(c, err)
			return
		}
		files = append(files, *file)
	}

	result := h.media.PublishBatch(c.Request.Context(), service.MediaEventPhoto, files, eventID)
	for range result.Items {
		h.metrics.ObserveUpload(string(service.MediaEventPhoto), true, 0)
	}
	for range result.Errors {
		h.metrics.ObserveUpload(string(service.MediaEventPhoto), false, 0)
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// FundraisingPoster godoc
// @Summary Upload fundraising poster
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Campaign ID"
// @Param file formData file true "Poster image"
// @Success 200 {object} response.Envelope
// @Router /fundraising/{id}/poster [post]
func (h *UploadHandler) FundraisingPoster(c *gin.Context) {
	h.publishSingle(c, service.MediaFundraisingPoster, "id")
}

// ColorPhoto godoc
// @Summary Upload merch color photo
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Color ID"
// @Param file formData file true "Color photo"
// @Success 200 {object} response.Envelope
// @Router /colors/{id}/photo [post]
func (h *UploadHandler) ColorPhoto(c *gin.Context) {
	h.publishSingle(c, service.MediaColorPhoto, "id")
}

// DonationSlip godoc
// @Summary Upload donation slip
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Donation ID"
// @Param file formData file true "Transfer slip"
// @Success 200 {object} response.Envelope
// @Router /donations/{id}/slip [post]
func (h *UploadHandler) DonationSlip(c *gin.Context) {
	h.publishSingle(c, service.MediaDonationSlip, "id")
}

// Generic godoc
// @Summary Upload by media kind
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "Media kind"
// @Param target_id formData int true "Target record ID"
// @Param file formData file true "File"
// @Success 200 {object} response.Envelope
// @Router /uploads/{kind} [post]
func (h *UploadHandler) Generic(c *gin.Context) {
	kind, err := service.ParseMediaKind(c.Param("kind"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unknown media kind"))
		return
	}
	targetID, err := parseFormID(c, "target_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.publish(c, kind, targetID)
}

func (h *UploadHandler) publishSingle(c *gin.Context, kind service.MediaKind, idParam string) {
	targetID, err := pathID(c, idParam)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.publish(c, kind, targetID)
}

func (h *UploadHandler) publish(c *gin.Context, kind service.MediaKind, targetID int64) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := h.readFile(header)
	if err != nil {
		response.Error(c, err)
		return
	}

	url, err := h.media.Publish(c.Request.Context(), kind, *file, targetID)
	if err != nil {
		h.metrics.ObserveUpload(string(kind), false, 0)
		// A persist failure still stored the blob; surface its URL so the
		// caller can retry the record update without re-uploading.
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrPersist.Code && url != "" {
			response.ErrorWithData(c, appErr, dto.UploadResult{URL: url})
			return
		}
		response.Error(c, err)
		return
	}

	h.metrics.ObserveUpload(string(kind), true, int64(len(file.Data)))
	response.JSON(c, http.StatusOK, dto.UploadResult{URL: url}, nil)
}

func (h *UploadHandler) readFile(header *multipart.FileHeader) (*service.MediaFile, error) {
	if header.Size > h.maxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload size limit")
	}
	src, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload")
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload size limit")
	}

	return &service.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func parseFormID(c *gin.Context, field string) (int64, error) {
	value := c.PostForm(field)
	if value == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, field+" is required")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+field)
	}
	return id, nil
}
