package payment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the payment-intent provider. BaseURL is a field so tests
// can point it at a stub server.
type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    "https://api.stripe.com",
		SecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// CreateIntent requests a card payment intent for the amount in minor
// currency units and returns the provider's client secret.
func (c *Client) CreateIntent(amount int64) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", "usd")
	form.Add("payment_method_types[]", "card")
	form.Set("metadata[reference]", uuid.NewString())

	req, err := http.NewRequest("POST", c.BaseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}

	return &intent, nil
}
