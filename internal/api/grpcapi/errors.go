package grpcapi

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xtding233/equity-backend/internal/app"
	"github.com/xtding233/equity-backend/internal/equity"
)

// HandleError converts service errors to a gRPC status. Validation failures
// become InvalidArgument carrying an errdetails.BadRequest field violation.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var ve *equity.ValidationError
	switch {
	case errors.As(err, &ve):
		st := status.New(codes.InvalidArgument, ve.Error())
		detailed, derr := st.WithDetails(&errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{
				{Field: ve.Field, Description: ve.Error()},
			},
		})
		if derr != nil {
			return st.Err()
		}
		return detailed.Err()
	case errors.Is(err, app.ErrUnknownPreset):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, "an unexpected error occurred")
}

// FieldViolation returns the offending field of an InvalidArgument status
// produced by HandleError.
func FieldViolation(err error) (string, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return "", false
	}
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok && len(br.GetFieldViolations()) > 0 {
			return br.GetFieldViolations()[0].GetField(), true
		}
	}
	return "", false
}

func isInternal(err error) bool {
	return status.Code(err) == codes.Internal
}
