package domain

import "github.com/shopspring/decimal"

// TopClient is one entry of a top-clients ranking.
type TopClient struct {
	FullName     string `json:"fullName"`
	RequestCount int    `json:"requestCount"`
}

// TopClientsResult holds the two independent top-5 rankings.
// A counterparty can appear in both lists.
type TopClientsResult struct {
	TopPurchaseClients []TopClient `json:"topPurchaseClients"`
	TopSaleClients     []TopClient `json:"topSaleClients"`
}

// PropertyTypeCount is the request count for one property type.
// Types with zero requests are omitted from results.
type PropertyTypeCount struct {
	PropertyType PropertyType `json:"propertyType"`
	RequestCount int          `json:"requestCount"`
}

// MinAmountClients names every client holding a request at the global
// minimum amount, comma-joined and sorted by name.
type MinAmountClients struct {
	FullName  string          `json:"fullName"`
	MinAmount decimal.Decimal `json:"minAmount"`
}
