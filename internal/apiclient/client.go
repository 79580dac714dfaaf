package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/domain"
)

// ErrUnexpectedStatus is wrapped by every non-2xx response error.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError carries the status and the API's error text, if any.
type StatusError struct {
	Method string
	Path   string
	Status int
	Reason string
}

func (e *StatusError) Error() string {
	msg := e.Method + " " + e.Path + ": " + http.StatusText(e.Status)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Client talks to the storefront HTTP API.
type Client struct {
	Base string
	HTTP *http.Client
}

func New(base string, timeout time.Duration) *Client {
	return &Client{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
	}
}

type productList struct {
	Total int              `json:"total"`
	Items []domain.Product `json:"items"`
}

// FetchProducts returns the whole catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var out productList
	if err := c.do(ctx, http.MethodGet, "/product/", nil, &out); err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	return out.Items, nil
}

// FetchProduct returns one product.
func (c *Client) FetchProduct(ctx context.Context, id string) (domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, "/product/"+id, nil, &out); err != nil {
		return domain.Product{}, errors.Wrapf(err, "fetch product %s", id)
	}
	return out, nil
}

// orderBody sends the total as a JSON number.
type orderBody struct {
	Payment domain.Payment `json:"payment"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address string         `json:"address"`
	Total   json.Number    `json:"total"`
	Items   []string       `json:"items"`
}

// SubmitOrder places an order. A rejected order surfaces as a *StatusError
// carrying the API's reason.
func (c *Client) SubmitOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	items := req.Items
	if items == nil {
		items = []string{}
	}
	body := orderBody{
		Payment: req.Payment,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Total:   json.Number(req.Total.String()),
		Items:   items,
	}
	var out struct {
		ID    string          `json:"id"`
		Total decimal.Decimal `json:"total"`
	}
	if err := c.do(ctx, http.MethodPost, "/order/", body, &out); err != nil {
		return domain.OrderResult{}, errors.Wrap(err, "submit order")
	}
	return domain.OrderResult{ID: out.ID, Total: out.Total}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return errors.Wrap(err, "encode")
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Reason: reason(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode")
	}
	return nil
}

// reason extracts {"error": "..."} from a failed response.
func reason(r io.Reader) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&e); err != nil {
		return ""
	}
	return e.Error
}
