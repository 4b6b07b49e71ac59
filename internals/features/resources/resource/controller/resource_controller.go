package controller

import (
	"io"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eduhub_backend/internals/constants"
	resourceDTO "eduhub_backend/internals/features/resources/resource/dto"
	resourceService "eduhub_backend/internals/features/resources/resource/service"
	tokenService "eduhub_backend/internals/features/tokens/token/service"
	helper "eduhub_backend/internals/helpers"
)

var validate = validator.New()

type ResourceController struct {
	Service *resourceService.ResourceService
	Tokens  *tokenService.TokenService
}

func NewResourceController(svc *resourceService.ResourceService, tokens *tokenService.TokenService) *ResourceController {
	return &ResourceController{Service: svc, Tokens: tokens}
}

// 📤 Create menerima multipart upload dan menjalankan pipeline ingestion.
func (ctrl *ResourceController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req resourceDTO.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Println("[ERROR] Failed to parse resource form:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form input")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File is required")
	}
	// guard ringan sebelum baca isi; validator di service tetap otoritatif
	if fileHeader.Size > constants.MaxUploadSize {
		return helper.JsonError(c, fiber.StatusBadRequest, "File too large (max 10 MB)")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}

	owner := resourceService.Owner{
		ID:      userID,
		Name:    helper.GetUserName(c),
		College: helper.GetUserCollege(c),
	}
	resource, err := ctrl.Service.Create(c.UserContext(), &req, content, fileHeader.Filename, owner)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Resource uploaded successfully", resource)
}

// 🔎 List: free-text search + filter + paging, privacy-scoped.
func (ctrl *ResourceController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	semester, _ := strconv.Atoi(c.Query("semester"))

	q := resourceDTO.ListResourceQuery{
		Search:   c.Query("search"),
		Semester: semester,
		Type:     c.Query("resource_type"),
		Privacy:  c.Query("privacy"),
		Offset:   paging.Offset,
		Limit:    paging.Limit,
	}

	resources, total, err := ctrl.Service.List(q, helper.GetUserCollege(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// browsing explore dihargai 1 explore point — best effort
	ctrl.Tokens.AwardQuiet(userID, constants.ReasonExploreView)

	return helper.JsonList(c, "Resources fetched", resources,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *ResourceController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}
	resource, err := ctrl.Service.Get(id, helper.GetUserCollege(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Resource fetched", resource)
}

func (ctrl *ResourceController) Download(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}
	content, filename, err := ctrl.Service.Download(id, helper.GetUserCollege(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(content)
}

func (ctrl *ResourceController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}

	var req resourceDTO.UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	resource, err := ctrl.Service.Update(id, &req, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Resource updated", resource)
}

func (ctrl *ResourceController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}
	if err := ctrl.Service.Delete(id, userID, false); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Resource deleted", fiber.Map{"resource_id": id})
}
