package rpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const typeKey = "type"

// WithType builds a status error carrying a machine-readable error type,
// e.g. "user_invalid_credentials".
func WithType(code codes.Code, errType, msg string) error {
	st := status.New(code, msg)
	detail, err := structpb.NewStruct(map[string]any{typeKey: errType})
	if err != nil {
		return st.Err()
	}
	withDetail, err := st.WithDetails(detail)
	if err != nil {
		return st.Err()
	}
	return withDetail.Err()
}

// TypeOf returns the error type attached by WithType, or "".
func TypeOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		if v, ok := s.GetFields()[typeKey]; ok {
			return v.GetStringValue()
		}
	}
	return ""
}
