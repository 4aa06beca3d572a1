package handler

import (
	"errors"

	"jobmatch/internal/delivery/http/dto"
	"jobmatch/internal/delivery/http/middleware"
	"jobmatch/internal/pkg/response"
	"jobmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.MatchUsecase
}

func NewJobsHandler(uc usecase.MatchUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/matches", h.HandleMatches)
	r.Get("/profile", h.HandleProfile)
}

func (h *JobsHandler) HandleMatches(c fiber.Ctx) error {
	q, err := parseMatchQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fieldErrs := q.Validate(); fieldErrs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid query parameters", fieldErrs, nil)
	}

	page, size := q.Paging()
	res, err := h.uc.Matches(c.Context(), usecase.MatchParams{
		Keywords: q.Keywords,
		Filters:  q.Filters(),
		Page:     page,
		PageSize: size,
		Refresh:  q.Refresh,
	})
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Raw(c, fiber.StatusOK, dto.NewMatchesResponse(res))
}

func (h *JobsHandler) HandleProfile(c fiber.Ctx) error {
	return response.Raw(c, fiber.StatusOK, dto.NewProfileResponse(h.uc.Profile()))
}

func parseMatchQuery(c fiber.Ctx) (dto.MatchQuery, error) {
	q := dto.MatchQuery{
		Keywords:     c.Query("keywords"),
		Location:     c.Query("location"),
		ContractType: c.Query("contractType"),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
	}

	var err error
	if q.MinMatchScore, err = parseQueryIntOptional(c, "minMatchScore"); err != nil {
		return q, err
	}
	if q.Page, err = parseQueryIntOptional(c, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = parseQueryIntOptional(c, "pageSize"); err != nil {
		return q, err
	}
	if q.Refresh, err = parseQueryBool(c, "refresh"); err != nil {
		return q, err
	}

	if q.MinMatchScore != nil || q.Location != "" || q.ContractType != "" || q.SortBy != "" || q.SortOrder != "" {
		q.MarkFiltered()
	}
	return q, nil
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSourcesUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
