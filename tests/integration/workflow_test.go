//go:build integration
// +build integration

// Package integration provides end-to-end tests for the Casa back office.
//
// These tests verify the COMPLETE request lifecycle against a running server:
//
//	Counterparty + Property → Request (validated) → Analytics
//
// Run with: go test -tags=integration -v ./tests/integration/...
//
// The server must be started with CASA_SEED=true so the fixture dataset
// (12 counterparties, 13 properties, 15 requests) is loaded. The analytics
// assertions below are literal values computed from that fixture.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// TestConfig holds test environment configuration
type TestConfig struct {
	BaseURL string
}

func getTestConfig() TestConfig {
	baseURL := os.Getenv("CASA_TEST_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return TestConfig{BaseURL: baseURL}
}

// ============================================================================
// API Request/Response Types (matching Casa's API contract)
// ============================================================================

type Counterparty struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	PassportNumber string `json:"passportNumber"`
	PhoneNumber    string `json:"phoneNumber"`
}

type Property struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Purpose         string  `json:"purpose"`
	CadastralNumber string  `json:"cadastralNumber"`
	Address         string  `json:"address"`
	TotalArea       float64 `json:"totalArea"`
}

type Request struct {
	ID             string        `json:"id"`
	CounterpartyID string        `json:"counterpartyId"`
	PropertyID     string        `json:"propertyId"`
	Type           string        `json:"type"`
	Amount         string        `json:"amount"`
	Date           time.Time     `json:"date"`
	Counterparty   *Counterparty `json:"counterparty"`
	Property       *Property     `json:"property"`
}

type TopClientsResult struct {
	TopPurchaseClients []ClientRequestCount `json:"topPurchaseClients"`
	TopSaleClients     []ClientRequestCount `json:"topSaleClients"`
}

type ClientRequestCount struct {
	FullName     string `json:"fullName"`
	RequestCount int    `json:"requestCount"`
}

type PropertyTypeCount struct {
	PropertyType string `json:"propertyType"`
	RequestCount int    `json:"requestCount"`
}

// ============================================================================
// Test Helper Functions
// ============================================================================

func doJSON(t *testing.T, method, url string, payload any, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}

	if out != nil && len(respBody) > 0 && resp.StatusCode < 300 {
		if err := json.Unmarshal(respBody, out); err != nil {
			t.Fatalf("Failed to unmarshal response: %v (body: %s)", err, string(respBody))
		}
	}

	return resp.StatusCode
}

// ============================================================================
// SCENARIO 1: Full Request Lifecycle
// ============================================================================

func TestRequestLifecycle(t *testing.T) {
	/*
	   SCENARIO: Register a client and a property, then open a request
	   binding the two, update it, and delete everything in reverse order.

	   EXPECTED BEHAVIOR:
	   - Both creates return 201 with server-assigned ids
	   - The request create resolves both references and returns them inline
	   - The update replaces the mutable fields while keeping the id
	   - Deletes return 204, repeat deletes 404
	*/
	config := getTestConfig()

	var counterparty Counterparty
	status := doJSON(t, "POST", config.BaseURL+"/counterparties", map[string]any{
		"fullName":       "Интеграционный Тест Иванович",
		"passportNumber": "4599 000001",
		"phoneNumber":    "+7-900-000-00-01",
	}, &counterparty)
	if status != http.StatusCreated {
		t.Fatalf("Expected 201 creating counterparty, got %d", status)
	}
	if counterparty.ID == "" {
		t.Fatal("Expected a server-assigned counterparty id")
	}

	var property Property
	status = doJSON(t, "POST", config.BaseURL+"/properties", map[string]any{
		"type":            "Apartment",
		"purpose":         "Residential",
		"cadastralNumber": "77:09:0001001:9001",
		"address":         "г. Москва, ул. Интеграционная, д. 1, кв. 1",
		"totalArea":       52.5,
		"floor":           3,
		"totalFloors":     9,
		"roomsCount":      2,
	}, &property)
	if status != http.StatusCreated {
		t.Fatalf("Expected 201 creating property, got %d", status)
	}

	var request Request
	status = doJSON(t, "POST", config.BaseURL+"/requests", map[string]any{
		"counterpartyId": counterparty.ID,
		"propertyId":     property.ID,
		"type":           "Purchase",
		"amount":         "7500000",
		"date":           "2025-08-15T00:00:00Z",
	}, &request)
	if status != http.StatusCreated {
		t.Fatalf("Expected 201 creating request, got %d", status)
	}
	if request.Counterparty == nil || request.Counterparty.FullName != "Интеграционный Тест Иванович" {
		t.Errorf("Expected the counterparty resolved inline, got %+v", request.Counterparty)
	}
	if request.Property == nil || request.Property.ID != property.ID {
		t.Errorf("Expected the property resolved inline, got %+v", request.Property)
	}

	var updated Request
	status = doJSON(t, "PUT", config.BaseURL+"/requests/"+request.ID, map[string]any{
		"counterpartyId": counterparty.ID,
		"propertyId":     property.ID,
		"type":           "Sale",
		"amount":         "8000000",
		"date":           "2025-08-20T00:00:00Z",
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("Expected 200 updating request, got %d", status)
	}
	if updated.ID != request.ID {
		t.Errorf("Update must keep the id: %s vs %s", updated.ID, request.ID)
	}
	if updated.Type != "Sale" {
		t.Errorf("Expected updated type Sale, got %s", updated.Type)
	}

	for _, path := range []string{
		"/requests/" + request.ID,
		"/properties/" + property.ID,
		"/counterparties/" + counterparty.ID,
	} {
		if status := doJSON(t, "DELETE", config.BaseURL+path, nil, nil); status != http.StatusNoContent {
			t.Errorf("Expected 204 deleting %s, got %d", path, status)
		}
		if status := doJSON(t, "DELETE", config.BaseURL+path, nil, nil); status != http.StatusNotFound {
			t.Errorf("Expected 404 on repeat delete of %s, got %d", path, status)
		}
	}

	t.Logf("✓ Lifecycle complete: request=%s", request.ID)
}

// ============================================================================
// SCENARIO 2: Referential Integrity
// ============================================================================

func TestRequestValidation_MissingReferences(t *testing.T) {
	/*
	   SCENARIO: Open a request against ids that do not exist.

	   EXPECTED BEHAVIOR:
	   - 404 (not 400) with a message naming which reference failed
	   - The counterparty is checked before the property, so when both are
	     missing the error names the counterparty
	*/
	config := getTestConfig()

	payload := func(counterpartyID, propertyID string) map[string]any {
		return map[string]any{
			"counterpartyId": counterpartyID,
			"propertyId":     propertyID,
			"type":           "Purchase",
			"amount":         "5000000",
			"date":           "2025-08-15T00:00:00Z",
		}
	}

	// Seeded ids that are known to exist.
	existingCounterparty := "00000000-0000-0000-0000-000000000001"
	existingProperty := "10000000-0000-0000-0000-000000000001"

	cases := []struct {
		name           string
		counterpartyID string
		propertyID     string
		wantMention    string
	}{
		{"MissingCounterparty", "99999999-0000-0000-0000-000000000000", existingProperty, "counterparty"},
		{"MissingProperty", existingCounterparty, "99999999-0000-0000-0000-000000000000", "property"},
		{"BothMissing", "99999999-0000-0000-0000-000000000000", "88888888-0000-0000-0000-000000000000", "counterparty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, _ := json.Marshal(payload(tc.counterpartyID, tc.propertyID))
			resp, err := http.Post(config.BaseURL+"/requests", "application/json", bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusNotFound {
				t.Fatalf("Expected 404, got %d", resp.StatusCode)
			}

			body, _ := io.ReadAll(resp.Body)
			if !bytes.Contains(body, []byte(tc.wantMention)) {
				t.Errorf("Expected the error to name the %s: %s", tc.wantMention, body)
			}
		})
	}
}

// ============================================================================
// SCENARIO 3: Analytics Over the Fixture Dataset
// ============================================================================

func TestAnalyticsOverSeedData(t *testing.T) {
	/*
	   SCENARIO: Run each analytics query against the seeded fixture and
	   check literal results.

	   These tests assume a freshly seeded server; mutations from other
	   tests against the fixture rows would shift the numbers.
	*/
	config := getTestConfig()

	t.Run("SellersInPeriod", func(t *testing.T) {
		var sellers []string
		url := fmt.Sprintf("%s/analytics/sellers?startDate=%s&endDate=%s",
			config.BaseURL, "2024-03-01", "2024-06-30")
		if status := doJSON(t, "GET", url, nil, &sellers); status != http.StatusOK {
			t.Fatalf("Expected 200, got %d", status)
		}

		expected := []string{
			"Зайцева Наталья Петровна",
			"Козлова Мария Владимировна",
			"Орлова Екатерина Дмитриевна",
			"Семенова Ольга Игоревна",
		}
		if len(sellers) != len(expected) {
			t.Fatalf("Expected %d sellers, got %v", len(expected), sellers)
		}
		for i, name := range expected {
			if sellers[i] != name {
				t.Errorf("Seller %d: expected %q, got %q", i, name, sellers[i])
			}
		}
	})

	t.Run("TopClients", func(t *testing.T) {
		var result TopClientsResult
		if status := doJSON(t, "GET", config.BaseURL+"/analytics/top-clients", nil, &result); status != http.StatusOK {
			t.Fatalf("Expected 200, got %d", status)
		}

		if len(result.TopPurchaseClients) == 0 {
			t.Fatal("Expected purchase clients")
		}
		top := result.TopPurchaseClients[0]
		if top.FullName != "Сидоров Алексей Петрович" || top.RequestCount != 2 {
			t.Errorf("Expected Сидоров with 2 purchases on top, got %+v", top)
		}

		if len(result.TopSaleClients) == 0 {
			t.Fatal("Expected sale clients")
		}
		top = result.TopSaleClients[0]
		if top.FullName != "Козлова Мария Владимировна" || top.RequestCount != 2 {
			t.Errorf("Expected Козлова with 2 sales on top, got %+v", top)
		}
	})

	t.Run("PropertyTypeStatistics", func(t *testing.T) {
		var stats []PropertyTypeCount
		if status := doJSON(t, "GET", config.BaseURL+"/analytics/property-type-statistics", nil, &stats); status != http.StatusOK {
			t.Fatalf("Expected 200, got %d", status)
		}

		counts := map[string]int{}
		for _, s := range stats {
			counts[s.PropertyType] = s.RequestCount
		}
		if counts["Apartment"] != 5 {
			t.Errorf("Expected 5 apartment requests, got %d", counts["Apartment"])
		}
		if counts["House"] != 2 || counts["Warehouse"] != 2 {
			t.Errorf("Unexpected distribution: %v", counts)
		}
	})

	t.Run("MinAmountClients", func(t *testing.T) {
		var result struct {
			FullName  string `json:"fullName"`
			MinAmount string `json:"minAmount"`
		}
		if status := doJSON(t, "GET", config.BaseURL+"/analytics/min-amount-clients", nil, &result); status != http.StatusOK {
			t.Fatalf("Expected 200, got %d", status)
		}
		if result.FullName != "Зайцева Наталья Петровна" {
			t.Errorf("Expected the 1.5M seller, got %q", result.FullName)
		}
		if result.MinAmount != "1500000" {
			t.Errorf("Expected minimum amount 1500000, got %q", result.MinAmount)
		}
	})

	t.Run("ClientsByPropertyType", func(t *testing.T) {
		var clients []string
		url := config.BaseURL + "/analytics/clients-by-property-type?propertyType=Apartment"
		if status := doJSON(t, "GET", url, nil, &clients); status != http.StatusOK {
			t.Fatalf("Expected 200, got %d", status)
		}

		expected := []string{"Петрова Анна Сергеевна", "Сидоров Алексей Петрович"}
		if len(clients) != len(expected) {
			t.Fatalf("Expected %v, got %v", expected, clients)
		}
		for i := range expected {
			if clients[i] != expected[i] {
				t.Errorf("Client %d: expected %q, got %q", i, expected[i], clients[i])
			}
		}
	})
}

// ============================================================================
// SCENARIO 4: Health and Input Validation
// ============================================================================

func TestHealthEndpoints(t *testing.T) {
	config := getTestConfig()

	var health map[string]string
	if status := doJSON(t, "GET", config.BaseURL+"/health", nil, &health); status != http.StatusOK {
		t.Fatalf("Expected 200 from /health, got %d", status)
	}
	if health["status"] == "" {
		t.Error("Expected a status field in the health payload")
	}

	if status := doJSON(t, "GET", config.BaseURL+"/ready", nil, nil); status != http.StatusOK {
		t.Errorf("Expected 200 from /ready, got %d", status)
	}
}

func TestValidationErrors(t *testing.T) {
	config := getTestConfig()

	t.Run("EmptyFullName", func(t *testing.T) {
		status := doJSON(t, "POST", config.BaseURL+"/counterparties", map[string]any{
			"fullName":       "",
			"passportNumber": "4500 111111",
			"phoneNumber":    "+7-900-000-00-02",
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400 for empty fullName, got %d", status)
		}
	})

	t.Run("UnknownRequestType", func(t *testing.T) {
		status := doJSON(t, "POST", config.BaseURL+"/requests", map[string]any{
			"counterpartyId": "00000000-0000-0000-0000-000000000001",
			"propertyId":     "10000000-0000-0000-0000-000000000001",
			"type":           "Lease",
			"amount":         "5000000",
			"date":           "2025-08-15T00:00:00Z",
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown request type, got %d", status)
		}
	})

	t.Run("BadAnalyticsDates", func(t *testing.T) {
		status := doJSON(t, "GET", config.BaseURL+"/analytics/sellers?startDate=not-a-date&endDate=2024-06-30", nil, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400 for a malformed date, got %d", status)
		}
	})
}
