package remp

// ResultOrNull collapses an unsuccessful envelope into nil.
// Transport errors are returned unchanged.
//
//	env, err := remp.ResultOrNull(client.Post(ctx, "/api/v1/users/create", params, nil))
func ResultOrNull(result *Result, err error) (Envelope, error) {
	if err != nil {
		return nil, err
	}

	if !result.IsSuccess() {
		return nil, nil
	}

	return result.Envelope, nil
}

// ResultOrBoolean reports whether the call succeeded, discarding the envelope.
// Transport errors are returned unchanged.
func ResultOrBoolean(result *Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}

	return result.IsSuccess(), nil
}

// CallOptions holds per-call settings.
type CallOptions struct {
	// AcceptedStatus lists non-200 status codes resolved as normal results.
	AcceptedStatus []int
}

// CallOption configures a single request.
type CallOption func(*CallOptions)

// WithAcceptedStatus marks additional status codes as successful for one call.
func WithAcceptedStatus(codes ...int) CallOption {
	return func(o *CallOptions) {
		o.AcceptedStatus = append(o.AcceptedStatus, codes...)
	}
}

// NewCallOptions applies opts to a fresh CallOptions.
func NewCallOptions(opts ...CallOption) *CallOptions {
	options := &CallOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}
