package network

// Endpoint paths relative to Config.BaseURL
const (
	PathValues = "/values"
	PathSpin   = "/spin"
)

// ValuesResponse is the body of GET /values
type ValuesResponse struct {
	SpinnerValues []int `json:"spinnerValues"`
}

// SpinResponse is the body of POST /spin
// Pointer distinguishes a missing field from a zero prize
type SpinResponse struct {
	SpinnerValue *int `json:"spinnerValue"`
}

// spinRequestBody is sent verbatim as the spin request body
var spinRequestBody = []byte("{}")
