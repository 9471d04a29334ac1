package domain

// ResourceLink is a hypermedia link in a payment-network response.
type ResourceLink struct {
	Href string `json:"href"`
}

// OnDemandAuthorization is the customer authorization the payment network
// requires before a funding source may be registered. Its links are attached
// verbatim to the funding-source request.
type OnDemandAuthorization struct {
	Links map[string]ResourceLink `json:"_links"`
}
