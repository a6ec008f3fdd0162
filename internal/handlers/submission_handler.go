package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fairrank/resume-screener/internal/models"
	"fairrank/resume-screener/internal/repositories"
	"fairrank/resume-screener/internal/services"
)

type SubmissionHandler struct {
	subRepo   repositories.SubmissionRepository
	worker    services.Worker
	storage   services.StorageService
	extractor services.TextExtractorService
}

func NewSubmissionHandler(
	subRepo repositories.SubmissionRepository,
	worker services.Worker,
	storage services.StorageService,
	extractor services.TextExtractorService,
) *SubmissionHandler {
	return &SubmissionHandler{
		subRepo:   subRepo,
		worker:    worker,
		storage:   storage,
		extractor: extractor,
	}
}

// HandleSubmit handles POST /submissions: persist a queued submission and
// hand it to the worker pool. Multipart with candidate_name, email, an
// optional jd_id, and either a resume file or resume_text.
func (h *SubmissionHandler) HandleSubmit(c *fiber.Ctx) error {
	candidateName := strings.TrimSpace(c.FormValue("candidate_name"))
	email := strings.TrimSpace(c.FormValue("email"))

	if candidateName == "" || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_name and email are required",
		})
	}

	var jdID *uuid.UUID
	if raw := c.FormValue("jd_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid jd_id format",
			})
		}
		jdID = &parsed
	}

	resumeText := strings.TrimSpace(c.FormValue("resume_text"))
	var resumePath *string

	if file, err := c.FormFile("resume"); err == nil && file != nil {
		if !h.extractor.SupportedExtension(file.Filename) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unsupported resume file type",
			})
		}

		filename, filePath, err := h.storage.SaveFile(file, "resume")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store resume file",
			})
		}
		resumePath = &filePath

		resumeText, err = h.extractor.ExtractText(filePath)
		if err != nil {
			// Cleanup uploaded file if extraction fails
			h.storage.DeleteFile(filename)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	if resumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "either resume file or resume_text must be provided",
		})
	}

	sub := &models.Submission{
		ID:               uuid.New(),
		CandidateName:    candidateName,
		CandidateEmail:   email,
		ResumeText:       resumeText,
		ResumeFilePath:   resumePath,
		JobDescriptionID: jdID,
		Status:           models.StatusQueued,
	}

	if err := h.subRepo.Create(sub); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create submission",
		})
	}

	h.worker.EnqueueSubmission(sub.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.SubmissionResponse{
		ID:     sub.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetResult handles GET /submissions/:id.
func (h *SubmissionHandler) HandleGetResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid submission id",
		})
	}

	sub, err := h.subRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	resp := models.SubmissionResultResponse{
		ID:              sub.ID.String(),
		Status:          string(sub.Status),
		CandidateName:   sub.CandidateName,
		OverallScore:    sub.OverallScore,
		Category:        sub.Category,
		ResolvedJDTitle: sub.ResolvedJDTitle,
		ErrorMessage:    sub.ErrorMessage,
	}

	if sub.Status == models.StatusCompleted && sub.VerdictJSON != nil {
		var verdict models.MatchVerdict
		if err := json.Unmarshal([]byte(*sub.VerdictJSON), &verdict); err == nil {
			resp.Verdict = &verdict
		}
	}

	return c.JSON(resp)
}
