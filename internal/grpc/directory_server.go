package grpcserver

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"tecnoAcademiaAdmin/internal/auth"
	"tecnoAcademiaAdmin/internal/directory"
	"tecnoAcademiaAdmin/models"
	"tecnoAcademiaAdmin/repository"
)

const listPageSize = 100 // Rows fetched per repository page when listing.

// DirectoryServer implements UserDirectoryServer on top of the SQLite repository.
type DirectoryServer struct {
	Users repository.UserRepositoryI
	Log   logrus.FieldLogger
}

// ListUsers returns every user ordered by id. Any authenticated caller may list.
func (s *DirectoryServer) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	if _, err := auth.RequirePrincipal(ctx); err != nil {
		return nil, err
	}
	var all []models.User
	for offset := 0; ; offset += listPageSize {
		page, err := s.Users.List(ctx, listPageSize, offset)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "list users: %v", err)
		}
		all = append(all, page...)
		if len(page) < listPageSize {
			break
		}
	}
	return toProtoUsers(all), nil
}

// CreateUser adds a user. A zero or absent id is assigned by the service.
func (s *DirectoryServer) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	d, err := draftFromReq(req)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.Create(ctx, d.User(d.ID))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, status.Errorf(codes.AlreadyExists, "user %d already exists", d.ID)
		}
		return nil, status.Errorf(codes.Internal, "create user: %v", err)
	}
	s.Log.WithField("id", u.ID).Info("user created")
	return toProtoUser(*u), nil
}

// UpdateUser replaces name, email and role of an existing user.
func (s *DirectoryServer) UpdateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	d, err := draftFromReq(req)
	if err != nil {
		return nil, err
	}
	if d.ID == 0 {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	u := d.User(d.ID)
	found, err := s.Users.Update(ctx, u)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "update user: %v", err)
	}
	if !found {
		return nil, status.Errorf(codes.NotFound, "user %d not found", d.ID)
	}
	s.Log.WithField("id", u.ID).Info("user updated")
	return toProtoUser(u), nil
}

// DeleteUser removes a user. Deleting an unknown id succeeds.
func (s *DirectoryServer) DeleteUser(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	found, err := s.Users.Delete(ctx, req.GetValue())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "delete user: %v", err)
	}
	if !found {
		s.Log.WithField("id", req.GetValue()).Debug("delete of unknown user ignored")
	} else {
		s.Log.WithField("id", req.GetValue()).Info("user deleted")
	}
	return &emptypb.Empty{}, nil
}

// ListRoles returns the fixed role set in display order.
func (s *DirectoryServer) ListRoles(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	if _, err := auth.RequirePrincipal(ctx); err != nil {
		return nil, err
	}
	out := &structpb.ListValue{}
	for _, r := range models.Roles() {
		out.Values = append(out.Values, structpb.NewStringValue(string(r)))
	}
	return out, nil
}

// draftFromReq decodes and validates a user payload with the same rules the
// console applies before submitting a form.
func draftFromReq(req *structpb.Struct) (directory.Draft, error) {
	u, err := fromProtoUser(req)
	if err != nil {
		return directory.Draft{}, status.Errorf(codes.InvalidArgument, "invalid user: %v", err)
	}
	d := directory.DraftOf(u)
	if err := d.Validate(); err != nil {
		return directory.Draft{}, status.Errorf(codes.InvalidArgument, "invalid user: %v", err)
	}
	return d, nil
}
