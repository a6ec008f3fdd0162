package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fairrank/resume-screener/internal/models"
	"fairrank/resume-screener/internal/services"
)

type JDHandler struct {
	jdStore   services.JDStoreService
	storage   services.StorageService
	extractor services.TextExtractorService
}

func NewJDHandler(
	jdStore services.JDStoreService,
	storage services.StorageService,
	extractor services.TextExtractorService,
) *JDHandler {
	return &JDHandler{
		jdStore:   jdStore,
		storage:   storage,
		extractor: extractor,
	}
}

// HandleUpload handles POST /jds. Accepts either a document file or a text
// form field, plus an optional title.
func (h *JDHandler) HandleUpload(c *fiber.Ctx) error {
	title := c.FormValue("title")
	text := c.FormValue("text")

	if file, err := c.FormFile("file"); err == nil && file != nil {
		if !h.extractor.SupportedExtension(file.Filename) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unsupported file type, expected pdf or plain text",
			})
		}

		filename, filePath, err := h.storage.SaveFile(file, "jd")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store uploaded file",
			})
		}

		text, err = h.extractor.ExtractText(filePath)
		if err != nil {
			// Cleanup uploaded file if extraction fails
			h.storage.DeleteFile(filename)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "either file or text must be provided",
		})
	}

	id, err := h.jdStore.Insert(c.UserContext(), text, title)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadJDResponse{
		ID:      id.String(),
		Message: "job description uploaded successfully",
	})
}

// HandleList handles GET /jds.
func (h *JDHandler) HandleList(c *fiber.Ctx) error {
	jds, err := h.jdStore.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.JDResponse, 0, len(jds))
	for _, jd := range jds {
		resp = append(resp, models.JDResponse{
			ID:        jd.ID.String(),
			Title:     jd.Title,
			Text:      jd.Text,
			CreatedAt: jd.CreatedAt,
		})
	}

	return c.JSON(resp)
}

// HandleGet handles GET /jds/:id.
func (h *JDHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job description id",
		})
	}

	jd, err := h.jdStore.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.JDResponse{
		ID:        jd.ID.String(),
		Title:     jd.Title,
		Text:      jd.Text,
		CreatedAt: jd.CreatedAt,
	})
}

// HandleDelete handles DELETE /jds/:id. Idempotent: deleting a missing id
// still returns 204.
func (h *JDHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job description id",
		})
	}

	if err := h.jdStore.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
