package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"photodesk/middleware"
	"photodesk/models"
	"photodesk/utils"
)

// TemplateController serves the workspace catalogs: checklist templates,
// label and page templates, and project document records. These are plain
// scoped records with no derived logic.
type TemplateController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewTemplateController(db *gorm.DB, logger *logrus.Logger) *TemplateController {
	return &TemplateController{DB: db, Logger: logger}
}

// Catalog returns the org's templates plus the built-ins.
func (tc *TemplateController) Catalog(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)

	var checklistTemplates []models.ChecklistTemplate
	if err := tc.DB.Where("org_id = ? OR org_id IS NULL", profile.OrgID).
		Order("created_at desc").Find(&checklistTemplates).Error; err != nil {
		tc.Logger.WithError(err).Error("Failed to load checklist templates")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load templates", err)
	}

	var labels []models.Label
	if err := tc.DB.Where("org_id = ?", profile.OrgID).
		Order("created_at desc").Find(&labels).Error; err != nil {
		tc.Logger.WithError(err).Error("Failed to load labels")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load templates", err)
	}

	var pages []models.Page
	if err := tc.DB.Where("org_id = ?", profile.OrgID).
		Order("created_at desc").Find(&pages).Error; err != nil {
		tc.Logger.WithError(err).Error("Failed to load pages")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to load templates", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"checklist_templates": checklistTemplates,
		"labels":              labels,
		"pages":               pages,
	}))
}

type createTemplateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ItemTitles  []string `json:"itemTitles"`
	ProjectID   *string  `json:"projectId"`
	ObjectKey   *string  `json:"objectKey"`
}

func parseTemplateRequest(c *fiber.Ctx) (*createTemplateRequest, error) {
	var req createTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name cannot be empty",
		})
	}
	return &req, nil
}

// CreateChecklistTemplate adds an org-scoped checklist template.
func (tc *TemplateController) CreateChecklistTemplate(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	req, errResp := parseTemplateRequest(c)
	if req == nil {
		return errResp
	}

	template := models.ChecklistTemplate{
		Name:        req.Name,
		Description: req.Description,
		OrgID:       &profile.OrgID,
		ItemTitles:  models.StringList(utils.NormalizeTags(req.ItemTitles)),
	}
	if err := tc.DB.Create(&template).Error; err != nil {
		tc.Logger.WithError(err).Error("Failed to create checklist template")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create template",
		})
	}
	return c.JSON(fiber.Map{"success": true, "templateId": template.ID})
}

// CreateLabel adds a label, optionally attached to a project.
func (tc *TemplateController) CreateLabel(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	req, errResp := parseTemplateRequest(c)
	if req == nil {
		return errResp
	}

	label := models.Label{
		Name:        req.Name,
		Description: req.Description,
		OrgID:       profile.OrgID,
		ProjectID:   req.ProjectID,
	}
	if err := tc.DB.Create(&label).Error; err != nil {
		tc.Logger.WithError(err).Error("Failed to create label")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create label",
		})
	}
	return c.JSON(fiber.Map{"success": true, "labelId": label.ID})
}

// CreatePage adds an album page, optionally attached to a project.
func (tc *TemplateController) CreatePage(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	req, errResp := parseTemplateRequest(c)
	if req == nil {
		return errResp
	}

	page := models.Page{
		Name:        req.Name,
		Description: req.Description,
		OrgID:       profile.OrgID,
		ProjectID:   req.ProjectID,
	}
	if err := tc.DB.Create(&page).Error; err != nil {
		tc.Logger.WithError(err).Error("Failed to create page")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create page",
		})
	}
	return c.JSON(fiber.Map{"success": true, "pageId": page.ID})
}

// CreateDocument records an uploaded project document.
func (tc *TemplateController) CreateDocument(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	req, errResp := parseTemplateRequest(c)
	if req == nil {
		return errResp
	}
	if req.ProjectID == nil || strings.TrimSpace(*req.ProjectID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Project is required",
		})
	}

	document := models.ProjectDocument{
		Name:      req.Name,
		ObjectKey: req.ObjectKey,
		OrgID:     profile.OrgID,
		ProjectID: *req.ProjectID,
		CreatedBy: profile.UserID,
	}
	if err := tc.DB.Create(&document).Error; err != nil {
		tc.Logger.WithError(err).Error("Failed to create project document")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create document",
		})
	}
	return c.JSON(fiber.Map{"success": true, "documentId": document.ID})
}
