package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"artculture/internal/config"
)

// Client - тонкий адаптер к внешнему геокодеру (Nominatim).
// Внешний сервис непрозрачен: таймаут и не-2xx ответы - восстановимые
// ошибки, они никогда не роняют процесс.
type Client interface {
	SearchAddress(ctx context.Context, query string) ([]Address, error)
}

type Address struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type nominatimAddress struct {
	Road        string `json:"road"`
	HouseNumber string `json:"house_number"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
}

type nominatimResult struct {
	Address nominatimAddress `json:"address"`
	Lat     string           `json:"lat"`
	Lon     string           `json:"lon"`
}

type nominatimClient struct {
	cfg        config.Geo
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &nominatimClient{
		cfg: cfg.Geo,
		httpClient: &http.Client{
			Timeout: cfg.Geo.Timeout,
		},
	}
}

func (c *nominatimClient) SearchAddress(ctx context.Context, query string) ([]Address, error) {
	// короткие запросы не ходят наружу
	if len([]rune(query)) < 3 {
		return []Address{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", "10")

	reqURL := fmt.Sprintf("%s/search?%s", c.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса к геокодеру: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("геокодер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("геокодер вернул статус %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа геокодера: %w", err)
	}

	addresses := make([]Address, 0, len(results))
	for _, item := range results {
		addresses = append(addresses, Address{
			DisplayName: formatDisplayName(item.Address),
			Lat:         item.Lat,
			Lon:         item.Lon,
		})
	}

	return addresses, nil
}

func formatDisplayName(addr nominatimAddress) string {
	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}

	road := addr.Road
	if road != "" && !strings.HasPrefix(strings.ToLower(road), "вулиця") {
		road = "вулиця " + road
	}

	postcode := addr.Postcode
	if postcode == "" {
		postcode = "Нема індекса"
	}

	parts := []string{}
	for _, part := range []string{road, strings.ToUpper(addr.HouseNumber), city, addr.State, postcode} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
