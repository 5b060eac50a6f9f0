package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"house-insights/services"
)

// paramError is a malformed query parameter.
type paramError struct {
	name  string
	value string
	err   error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.name, e.value, e.err)
}

func (e *paramError) Unwrap() error { return e.err }

// listParam accepts both ?k=a,b and ?k=a&k=b.
func listParam(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{name: key, value: raw, err: err}
	}
	return &n, nil
}

func floatParam(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &paramError{name: key, value: raw, err: err}
	}
	return &f, nil
}

func boolParam(c *gin.Context, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	switch strings.ToLower(raw) {
	case "":
		return false, nil
	case "on":
		return true, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &paramError{name: key, value: raw, err: err}
	}
	return b, nil
}

func overviewRequest(c *gin.Context) services.OverviewRequest {
	return services.OverviewRequest{
		Columns:  listParam(c, "columns"),
		Zipcodes: listParam(c, "zipcodes"),
	}
}

func commercialRequest(c *gin.Context) (services.CommercialRequest, error) {
	var req services.CommercialRequest
	var err error
	if req.MaxYearBuilt, err = intParam(c, "year"); err != nil {
		return req, err
	}
	if req.MaxPrice, err = floatParam(c, "price"); err != nil {
		return req, err
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := services.ParseSaleDate(raw)
		if err != nil {
			return req, &paramError{name: "date", value: raw, err: err}
		}
		req.MaxDate = &d
	}
	return req, nil
}

func attributeRequest(c *gin.Context) (services.AttributeRequest, error) {
	var req services.AttributeRequest
	var err error
	if req.MaxBedrooms, err = intParam(c, "bedrooms"); err != nil {
		return req, err
	}
	if req.MaxBathrooms, err = floatParam(c, "bathrooms"); err != nil {
		return req, err
	}
	if req.MaxFloors, err = floatParam(c, "floors"); err != nil {
		return req, err
	}
	if req.WaterfrontOnly, err = boolParam(c, "waterfront"); err != nil {
		return req, err
	}
	return req, nil
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var loadErr *services.DataLoadError
	var featErr *services.FeatureDerivationError
	var pErr *paramError
	switch {
	case errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &featErr):
		return http.StatusInternalServerError
	case errors.As(err, &pErr),
		errors.Is(err, services.ErrUnknownColumn),
		errors.Is(err, services.ErrThresholdOutOfDomain):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}
