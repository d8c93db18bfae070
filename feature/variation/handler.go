package variation

import (
	"errors"

	"variation-manager/core/logger"
	"variation-manager/core/matrix"
	"variation-manager/core/store"
	"variation-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for variation editing.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// FacetsRequest carries a whole facet set.
type FacetsRequest struct {
	Facets matrix.FacetSet `json:"facets"`
}

// FacetKindRequest adds a facet or changes its kind.
type FacetKindRequest struct {
	Kind        matrix.Kind `json:"kind"`
	CustomLabel string      `json:"customLabel"`
}

// PendingRequest sets a facet's pending input.
type PendingRequest struct {
	Text string `json:"text"`
}

// ValueRequest adds a facet value.
type ValueRequest struct {
	Value string `json:"value"`
}

// MoveRequest reorders a facet value.
type MoveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// FieldRequest updates one combination field.
type FieldRequest struct {
	Field store.Field `json:"field"`
	Value string      `json:"value"`
}

// PriceRequest carries a price.
type PriceRequest struct {
	Price string `json:"price"`
}

// CompaniesRequest replaces the known company ids.
type CompaniesRequest struct {
	Companies []string `json:"companies"`
}

// RegisterRoutes registers the variation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/variations")
	group.Post("/generate", h.HandleGenerate)

	sessions := group.Group("/sessions")
	sessions.Post("/", h.HandleCreateSession)
	sessions.Get("/:id", h.HandleGetSession)
	sessions.Delete("/:id", h.HandleCloseSession)

	sessions.Put("/:id/facets", h.HandleReplaceFacets)
	sessions.Post("/:id/facets", h.HandleAddFacet)
	sessions.Put("/:id/facets/:facet", h.HandleSetFacetKind)
	sessions.Delete("/:id/facets/:facet", h.HandleRemoveFacet)
	sessions.Put("/:id/facets/:facet/pending", h.HandleSetPending)
	sessions.Post("/:id/facets/:facet/pending/commit", h.HandleCommitPending)
	sessions.Post("/:id/facets/:facet/values", h.HandleAddValue)
	sessions.Delete("/:id/facets/:facet/values/:value", h.HandleRemoveValue)
	sessions.Post("/:id/facets/:facet/values/move", h.HandleMoveValue)

	sessions.Put("/:id/companies", h.HandleSetCompanies)
	sessions.Patch("/:id/combinations/:index", h.HandleUpdateField)
	sessions.Put("/:id/combinations/:index/prices/:companyId", h.HandleUpdateCompanyPrice)
	sessions.Put("/:id/combinations/:index/skus/:companyId", h.HandleUpdateCompanySku)
	sessions.Post("/:id/combinations/:index/apply-price", h.HandleApplyPrice)
	sessions.Post("/:id/combinations/:index/image", h.HandleUploadImage)
	sessions.Post("/:id/clear", h.HandleClear)

	sessions.Get("/:id/submission", h.HandleSubmission)
	sessions.Post("/:id/save", h.HandleSave)
}

// HandleGenerate returns the blank matrix for a facet set.
// @Summary Generate combinations
// @Description Builds every combination of the given facets without opening a session.
// @Tags variations
// @Accept json
// @Produce json
// @Param request body FacetsRequest true "Facets"
// @Success 200 {array} matrix.Combination "Combinations"
// @Failure 400 {object} map[string]string "Invalid facets"
// @Router /variations/generate [post]
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	var req FacetsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	combos, err := h.service.Generate(req.Facets)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(combos)
}

// HandleCreateSession opens an editing session.
// @Summary Open session
// @Description Opens an editing session from facets and existing variations, or from the product's saved draft.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Session"
// @Success 201 {object} Snapshot "Session"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /variations/sessions [post]
func (h *Handler) HandleCreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	snap, err := h.service.CreateSession(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// HandleGetSession returns a session.
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Snapshot "Session"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /variations/sessions/{id} [get]
func (h *Handler) HandleGetSession(c *fiber.Ctx) error {
	return h.reply(c)(h.service.GetSession(c.Params("id")))
}

// HandleCloseSession discards a session.
// @Summary Close session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "Closed"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /variations/sessions/{id} [delete]
func (h *Handler) HandleCloseSession(c *fiber.Ctx) error {
	if err := h.service.CloseSession(c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReplaceFacets swaps the facet set and regenerates the matrix.
// @Summary Replace facets
// @Tags facets
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body FacetsRequest true "Facets"
// @Success 200 {object} Snapshot "Session"
// @Failure 400 {object} map[string]string "Invalid facets"
// @Router /variations/sessions/{id}/facets [put]
func (h *Handler) HandleReplaceFacets(c *fiber.Ctx) error {
	var req FacetsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.ReplaceFacets(c.Params("id"), req.Facets))
}

// HandleAddFacet appends an empty facet.
// @Summary Add facet
// @Tags facets
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body FacetKindRequest true "Facet kind"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets [post]
func (h *Handler) HandleAddFacet(c *fiber.Ctx) error {
	var req FacetKindRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.AddFacet(c.Params("id"), req.Kind, req.CustomLabel))
}

// HandleSetFacetKind changes a facet's kind.
// @Summary Set facet kind
// @Tags facets
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param facet path int true "Facet index"
// @Param request body FacetKindRequest true "Facet kind"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets/{facet} [put]
func (h *Handler) HandleSetFacetKind(c *fiber.Ctx) error {
	facet, err := c.ParamsInt("facet")
	if err != nil {
		return badRequest(c, err)
	}
	var req FacetKindRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.SetFacetKind(c.Params("id"), facet, req.Kind, req.CustomLabel))
}

// HandleRemoveFacet deletes a facet.
// @Summary Remove facet
// @Tags facets
// @Produce json
// @Param id path string true "Session ID"
// @Param facet path int true "Facet index"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets/{facet} [delete]
func (h *Handler) HandleRemoveFacet(c *fiber.Ctx) error {
	facet, err := c.ParamsInt("facet")
	if err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.RemoveFacet(c.Params("id"), facet))
}

// HandleSetPending stores a facet's pending input.
// @Summary Set pending value
// @Tags facets
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param facet path int true "Facet index"
// @Param request body PendingRequest true "Pending text"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets/{facet}/pending [put]
func (h *Handler) HandleSetPending(c *fiber.Ctx) error {
	facet, err := c.ParamsInt("facet")
	if err != nil {
		return badRequest(c, err)
	}
	var req PendingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.SetPending(c.Params("id"), facet, req.Text))
}

// HandleCommitPending adds a facet's pending input as a value.
// @Summary Commit pending value
// @Tags facets
// @Produce json
// @Param id path string true "Session ID"
// @Param facet path int true "Facet index"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets/{facet}/pending/commit [post]
func (h *Handler) HandleCommitPending(c *fiber.Ctx) error {
	facet, err := c.ParamsInt("facet")
	if err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.CommitPending(c.Params("id"), facet))
}

// HandleAddValue appends a facet value.
// @Summary Add value
// @Tags facets
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param facet path int true "Facet index"
// @Param request body ValueRequest true "Value"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets/{facet}/values [post]
func (h *Handler) HandleAddValue(c *fiber.Ctx) error {
	facet, err := c.ParamsInt("facet")
	if err != nil {
		return badRequest(c, err)
	}
	var req ValueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.AddValue(c.Params("id"), facet, req.Value))
}

// HandleRemoveValue deletes a facet value.
// @Summary Remove value
// @Tags facets
// @Produce json
// @Param id path string true "Session ID"
// @Param facet path int true "Facet index"
// @Param value path string true "Value"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets/{facet}/values/{value} [delete]
func (h *Handler) HandleRemoveValue(c *fiber.Ctx) error {
	facet, err := c.ParamsInt("facet")
	if err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.RemoveValue(c.Params("id"), facet, c.Params("value")))
}

// HandleMoveValue reorders a facet value.
// @Summary Move value
// @Tags facets
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param facet path int true "Facet index"
// @Param request body MoveRequest true "Positions"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/facets/{facet}/values/move [post]
func (h *Handler) HandleMoveValue(c *fiber.Ctx) error {
	facet, err := c.ParamsInt("facet")
	if err != nil {
		return badRequest(c, err)
	}
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.MoveValue(c.Params("id"), facet, req.From, req.To))
}

// HandleSetCompanies replaces the session's company ids.
// @Summary Set companies
// @Tags combinations
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body CompaniesRequest true "Companies"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/companies [put]
func (h *Handler) HandleSetCompanies(c *fiber.Ctx) error {
	var req CompaniesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.SetCompanies(c.Params("id"), req.Companies))
}

// HandleUpdateField sets one field of a combination.
// @Summary Update combination field
// @Tags combinations
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Combination index"
// @Param request body FieldRequest true "Field"
// @Success 200 {object} Snapshot "Session"
// @Failure 400 {object} map[string]string "Unknown field or index"
// @Router /variations/sessions/{id}/combinations/{index} [patch]
func (h *Handler) HandleUpdateField(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, err)
	}
	var req FieldRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.UpdateField(c.Params("id"), index, req.Field, req.Value))
}

// HandleUpdateCompanyPrice sets one company's price.
// @Summary Update company price
// @Tags combinations
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Combination index"
// @Param companyId path string true "Company ID"
// @Param request body PriceRequest true "Price"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/combinations/{index}/prices/{companyId} [put]
func (h *Handler) HandleUpdateCompanyPrice(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, err)
	}
	var req PriceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.UpdateCompanyPrice(c.Params("id"), index, c.Params("companyId"), req.Price))
}

// HandleUpdateCompanySku sets one company's SKU.
// @Summary Update company SKU
// @Tags combinations
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Combination index"
// @Param companyId path string true "Company ID"
// @Param request body ValueRequest true "SKU"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/combinations/{index}/skus/{companyId} [put]
func (h *Handler) HandleUpdateCompanySku(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, err)
	}
	var req ValueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.UpdateCompanySku(c.Params("id"), index, c.Params("companyId"), req.Value))
}

// HandleApplyPrice sets one price for every company of a combination.
// @Summary Apply price to all companies
// @Tags combinations
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Combination index"
// @Param request body PriceRequest true "Price"
// @Success 200 {object} Snapshot "Session"
// @Router /variations/sessions/{id}/combinations/{index}/apply-price [post]
func (h *Handler) HandleApplyPrice(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, err)
	}
	var req PriceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.reply(c)(h.service.ApplyPriceToAllCompanies(c.Params("id"), index, req.Price))
}

// HandleUploadImage stores an image for a combination.
// @Summary Upload combination image
// @Tags combinations
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Combination index"
// @Param image formData file true "Image file"
// @Success 200 {object} Snapshot "Session"
// @Failure 413 {object} map[string]string "Image too large"
// @Failure 503 {object} map[string]string "Storage disabled"
// @Router /variations/sessions/{id}/combinations/{index}/image [post]
func (h *Handler) HandleUploadImage(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, err)
	}
	header, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, err)
	}
	file, err := header.Open()
	if err != nil {
		return badRequest(c, err)
	}
	defer file.Close()

	return h.reply(c)(h.service.UploadImage(c.UserContext(), c.Params("id"), index, ImageUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	}))
}

// HandleClear blanks every combination's data.
// @Summary Clear combination data
// @Description Requires confirm=true.
// @Tags combinations
// @Produce json
// @Param id path string true "Session ID"
// @Param confirm query bool true "Confirm"
// @Success 200 {object} Snapshot "Session"
// @Failure 400 {object} map[string]string "Not confirmed"
// @Router /variations/sessions/{id}/clear [post]
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	confirmed := utils.ToBool(c.Query("confirm"))
	return h.reply(c)(h.service.ClearAllCombinationData(c.Params("id"), confirmed))
}

// HandleSubmission returns the normalized variations.
// @Summary Get submission payload
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} Variation "Variations"
// @Failure 400 {object} map[string]string "Invalid prices or numbers"
// @Router /variations/sessions/{id}/submission [get]
func (h *Handler) HandleSubmission(c *fiber.Ctx) error {
	out, err := h.service.Submission(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleSave persists the session as the product's draft.
// @Summary Save draft
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Draft "Draft"
// @Failure 503 {object} map[string]string "Persistence disabled"
// @Router /variations/sessions/{id}/save [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	draft, err := h.service.SaveDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(draft)
}

func (h *Handler) reply(c *fiber.Ctx) func(*Snapshot, error) error {
	return func(snap *Snapshot, err error) error {
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(snap)
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	if status >= fiber.StatusInternalServerError && status != fiber.StatusServiceUnavailable {
		logger.WithRayID(h.service.logger, c).Error("Variation request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUploadInProgress), errors.Is(err, ErrCombinationGone):
		return fiber.StatusConflict
	case errors.Is(err, ErrImageTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, ErrStorageDisabled), errors.Is(err, ErrPersistenceDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, store.ErrIndexOutOfRange),
		errors.Is(err, store.ErrUnknownField),
		errors.Is(err, matrix.ErrUnknownKind),
		errors.Is(err, matrix.ErrMissingCustomLabel),
		errors.Is(err, matrix.ErrDuplicateValue),
		errors.Is(err, matrix.ErrDuplicateLabel),
		errors.Is(err, ErrFacetIndexOutOfRange),
		errors.Is(err, ErrEmptyValue),
		errors.Is(err, ErrValueNotFound),
		errors.Is(err, ErrUnsupportedImage),
		errors.Is(err, ErrConfirmationRequired),
		errors.Is(err, utils.ErrInvalidAmount):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
