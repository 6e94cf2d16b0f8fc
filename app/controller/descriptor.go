package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-qrplatba/app/factory"
	"github.com/vibast-solutions/ms-go-qrplatba/app/mapper"
	"github.com/vibast-solutions/ms-go-qrplatba/app/service"
	"github.com/vibast-solutions/ms-go-qrplatba/app/types"
)

type DescriptorController struct {
	descriptorService *service.DescriptorService
	logger            logrus.FieldLogger
}

func NewDescriptorController(descriptorService *service.DescriptorService) *DescriptorController {
	return &DescriptorController{
		descriptorService: descriptorService,
		logger:            factory.NewModuleLogger("descriptors-controller"),
	}
}

func (c *DescriptorController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *DescriptorController) AccountToIban(ctx echo.Context) error {
	req, err := types.NewAccountToIbanRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	iban, err := c.descriptorService.AccountToIban(req.Account)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, mapper.AccountToIbanResponse(req.Account, iban))
}

func (c *DescriptorController) PreviewDescriptor(ctx echo.Context) error {
	req, err := types.NewEncodeDescriptorRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	descriptor, err := c.descriptorService.PreviewDescriptor(req)
	if err != nil {
		if service.IsInputError(err) {
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		}
		c.logger.WithError(err).Error("Preview descriptor failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, mapper.PreviewToResponse(descriptor))
}

func (c *DescriptorController) CreateDescriptor(ctx echo.Context) error {
	req, err := types.NewEncodeDescriptorRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.descriptorService.CreateDescriptor(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case service.IsInputError(err):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDescriptorAlreadyExists):
			return c.writeError(ctx, http.StatusConflict, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create descriptor failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.DescriptorEnvelopeResponse{Descriptor: mapper.DescriptorToResponse(item)})
}

func (c *DescriptorController) GetDescriptor(ctx echo.Context) error {
	req, err := types.NewGetDescriptorRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.descriptorService.GetDescriptor(ctx.Request().Context(), req.Reference)
	if err != nil {
		if errors.Is(err, service.ErrDescriptorNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "descriptor not found")
		}
		c.logger.WithError(err).Error("Get descriptor failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.DescriptorEnvelopeResponse{Descriptor: mapper.DescriptorToResponse(item)})
}

func (c *DescriptorController) ListDescriptors(ctx echo.Context) error {
	req, err := types.NewListDescriptorsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.descriptorService.ListDescriptors(ctx.Request().Context(), req)
	if err != nil {
		c.logger.WithError(err).Error("List descriptors failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListDescriptorsResponse{Descriptors: mapper.DescriptorsToResponse(items)})
}

func (c *DescriptorController) RenderDescriptor(ctx echo.Context) error {
	req, err := types.NewRenderDescriptorRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.descriptorService.RenderDescriptor(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDescriptorNotFound):
			return c.writeError(ctx, http.StatusNotFound, "descriptor not found")
		case service.IsInputError(err):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		default:
			c.logger.WithError(err).Error("Render descriptor failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	if result.Format == types.QRFormatPNG {
		return ctx.Blob(http.StatusOK, "image/png", result.PNG)
	}

	return ctx.JSON(http.StatusOK, &types.QRCodeResponse{
		Reference: result.Descriptor.Reference,
		Format:    result.Format,
		Content:   result.Content,
	})
}

func (c *DescriptorController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
