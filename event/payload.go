package event

// SpinResultPayload carries the outcome of one spin request
// Seq identifies the request; consumers drop payloads with a stale Seq
type SpinResultPayload struct {
	Seq   uint64
	Value int
	Err   error
}

// ValuesPayload carries the outcome of one value set request
type ValuesPayload struct {
	Seq    uint64
	Values []int
	Err    error
}
