package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/domain/contact"
)

// ParseAddress separa una dirección libre en partes.
// POST /api/tools/parse-address {address}
//
// Sin dirección reconocible responde 422.
func ParseAddress(c *fiber.Ctx) error {
	var in dto.ParseAddressRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Address) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "address es requerido"})
	}
	parsed := contact.ParseScrubbedAddress(in.Address)
	if parsed == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPARSEABLE", Message: "no se reconoce una dirección"})
	}
	return c.JSON(ToParsedAddressDTO(parsed))
}

// ToParsedAddressDTO convierte la dirección de dominio al cuerpo de respuesta.
func ToParsedAddressDTO(p *contact.ParsedAddress) dto.ParsedAddressDTO {
	return dto.ParsedAddressDTO{
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
	}
}
