package holidaycalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// Client клиент календаря государственных праздников (Nager.Date совместимый API)
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	log         Logger
}

// NewClient создает новый экземпляр клиента календаря
func NewClient(baseURL, countryCode string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		countryCode: strings.ToUpper(countryCode),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPublicHolidays получает праздники страны за год
func (c *Client) GetPublicHolidays(ctx context.Context, year int) ([]PublicHoliday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: country %s", ErrUnknownCountry, c.countryCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var holidays []PublicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return holidays, nil
}

// HolidaysInRange возвращает общие праздники в диапазоне дат, запрашивая каждый затронутый год
func (c *Client) HolidaysInRange(ctx context.Context, start, end time.Time) ([]domain.Holiday, error) {
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)

	result := make([]domain.Holiday, 0)
	for year := start.Year(); year <= end.Year(); year++ {
		holidays, err := c.GetPublicHolidays(ctx, year)
		if err != nil {
			c.log.Warn("HolidayCalendar: failed to fetch %d holidays: %v", year, err)
			return nil, err
		}

		for _, h := range holidays {
			date, err := time.Parse(domain.DateFormat, h.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: bad date %q: %v", ErrInvalidResponse, h.Date, err)
			}
			if date.Before(start) || date.After(end) {
				continue
			}
			result = append(result, domain.Holiday{Date: date, Name: h.displayName()})
		}
	}

	return result, nil
}
