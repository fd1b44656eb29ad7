package lumi

// Request binds a schema to a data source and the parameters of one
// request. It is not safe for concurrent use.
//
// Example:
//
//	rows := lumi.NewRequest(s, memory.New(records), params).
//	    Filter().
//	    Order().
//	    Result().
//	    Records()
type Request[B Backend[B]] struct {
	schema *Schema
	data   B
	params Params
}

// NewRequest creates a request over data.
func NewRequest[B Backend[B]](s *Schema, data B, params Params) *Request[B] {
	return &Request[B]{schema: s, data: data, params: params}
}

// Filter applies every filter parameter.
func (r *Request[B]) Filter() *Request[B] {
	r.data = ApplyFilter(r.schema, r.data, r.params)
	return r
}

// Order applies the "ordering" parameter.
func (r *Request[B]) Order() *Request[B] {
	r.data = ApplyOrder(r.schema, r.data, r.params)
	return r
}

// Result returns the current data.
func (r *Request[B]) Result() B {
	return r.data
}

// Params returns the request parameters.
func (r *Request[B]) Params() Params {
	return r.params
}
