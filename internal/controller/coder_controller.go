package controller

import (
	"ai-coderagent-be/internal/dto"
	"ai-coderagent-be/internal/pkg/serverutils"
	"ai-coderagent-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICoderController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GenerateLocal(ctx *fiber.Ctx) error
}

type coderController struct {
	coderService service.ICoderService
	localMode    bool
}

// NewCoderController routes POST /coder/generate to the variant selected at
// boot. Both variants share the same path; the deployment decides which one
// answers.
func NewCoderController(coderService service.ICoderService, localMode bool) ICoderController {
	return &coderController{
		coderService: coderService,
		localMode:    localMode,
	}
}

func (c *coderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coder")
	if c.localMode {
		h.Post("/generate", c.GenerateLocal)
	} else {
		h.Post("/generate", c.Generate)
	}
}

func (c *coderController) Generate(ctx *fiber.Ctx) error {
	var query dto.GenerateCodeQuery
	if err := ctx.QueryParser(&query); err != nil {
		return serverutils.NewValidationError(err.Error())
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	var req dto.GenerateCodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError(err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	projectId, _ := uuid.Parse(query.ProjectId)
	userId, _ := uuid.Parse(query.UserId)

	res, err := c.coderService.GenerateRemote(ctx.Context(), projectId, userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *coderController) GenerateLocal(ctx *fiber.Ctx) error {
	var req dto.GenerateCodeLocalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError(err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.coderService.GenerateLocal(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}
