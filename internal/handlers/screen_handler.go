package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fairrank/resume-screener/internal/models"
	"fairrank/resume-screener/internal/services"
)

type ScreenHandler struct {
	screening services.ScreeningService
	storage   services.StorageService
	extractor services.TextExtractorService
}

func NewScreenHandler(
	screening services.ScreeningService,
	storage services.StorageService,
	extractor services.TextExtractorService,
) *ScreenHandler {
	return &ScreenHandler{
		screening: screening,
		storage:   storage,
		extractor: extractor,
	}
}

// HandleScreen handles POST /screen: synchronous screening of a resume
// against an explicit JD or the nearest one. Accepts multipart (resume file
// or resume_text field) or a JSON body.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	resumeText, jdIDParam, err := h.parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if resumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "either resume file or resume_text must be provided",
		})
	}

	var jdID *uuid.UUID
	if jdIDParam != "" {
		parsed, err := uuid.Parse(jdIDParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid jd_id format",
			})
		}
		jdID = &parsed
	}

	result, err := h.screening.Screen(c.UserContext(), resumeText, jdID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ScreenResponse{
		Verdict:         result.Verdict,
		Category:        result.Category,
		ResolvedJDID:    result.JDID.String(),
		ResolvedJDTitle: result.JDTitle,
		EmbeddingScore:  result.EmbeddingScore,
	})
}

func (h *ScreenHandler) parseRequest(c *fiber.Ctx) (resumeText, jdID string, err error) {
	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		var req models.ScreenRequest
		if err := c.BodyParser(&req); err != nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
		}
		return strings.TrimSpace(req.ResumeText), req.JDID, nil
	}

	jdID = c.FormValue("jd_id")

	if file, ferr := c.FormFile("resume"); ferr == nil && file != nil {
		if !h.extractor.SupportedExtension(file.Filename) {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "unsupported resume file type")
		}

		filename, filePath, serr := h.storage.SaveFile(file, "resume")
		if serr != nil {
			return "", "", serr
		}

		text, eerr := h.extractor.ExtractText(filePath)
		if eerr != nil {
			// Cleanup uploaded file if extraction fails
			h.storage.DeleteFile(filename)
			return "", "", eerr
		}
		return text, jdID, nil
	}

	return strings.TrimSpace(c.FormValue("resume_text")), jdID, nil
}
