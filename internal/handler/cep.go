package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/apperr"
)

// DefaultCEPBaseURL is the public BrasilAPI endpoint the proxy forwards to.
const DefaultCEPBaseURL = "https://brasilapi.com.br"

// CEPHandler proxies CEP (Brazilian postal code) lookups to BrasilAPI and
// normalizes the upstream's failure modes.  BaseURL is a field so tests can
// point the handler at a stub server.
type CEPHandler struct {
	BaseURL string
	Client  *http.Client
}

func NewCEPHandler() *CEPHandler {
	return &CEPHandler{
		BaseURL: DefaultCEPBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Get looks up the address for ?cep=<code>.  The upstream payload is passed
// through under "data"; upstream validation failures come back as 400 with
// the upstream's message.
func (h *CEPHandler) Get(c echo.Context) error {
	cep := strings.TrimSpace(c.QueryParam("cep"))
	if cep == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "CEP is required"})
	}

	updatedAt := time.Now().UTC()

	req, err := http.NewRequestWithContext(c.Request().Context(),
		http.MethodGet, h.BaseURL+"/api/cep/v1/"+cep, nil)
	if err != nil {
		return apperr.NewInternal(err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return apperr.NewServiceUnavailable("Error fetching CEP data.", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get(echo.HeaderContentType); !strings.Contains(ct, "application/json") {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"updated_at": updatedAt,
			"error": echo.Map{
				"message": "The API returned an invalid response or the CEP is invalid.",
			},
		})
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"updated_at": updatedAt,
			"error": echo.Map{
				"message": "The API returned an invalid response or the CEP is invalid.",
			},
		})
	}

	if upstreamErrors, ok := body["errors"]; ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"updated_at": updatedAt,
			"error": echo.Map{
				"message": body["message"],
				"errors":  upstreamErrors,
			},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"updated_at": updatedAt,
		"data":       body,
	})
}
