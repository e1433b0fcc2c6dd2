package grpcserver

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"tecnoAcademiaAdmin/models"
)

// toProtoUser converts a models.User to its Struct wire form.
func toProtoUser(u models.User) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":    structpb.NewNumberValue(float64(u.ID)),
		"name":  structpb.NewStringValue(u.Name),
		"email": structpb.NewStringValue(u.Email),
		"role":  structpb.NewStringValue(string(u.Role)),
	}}
}

// fromProtoUser reads a user from its Struct wire form. A missing id is zero.
// Field presence and role membership are checked by the caller.
func fromProtoUser(s *structpb.Struct) (models.User, error) {
	if s == nil {
		return models.User{}, fmt.Errorf("user is required")
	}
	f := s.GetFields()
	var u models.User
	if v, ok := f["id"]; ok {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return models.User{}, fmt.Errorf("id must be a number")
		}
		if n.NumberValue < 0 || n.NumberValue != math.Trunc(n.NumberValue) || n.NumberValue > 1<<53 {
			return models.User{}, fmt.Errorf("id must be a non-negative integer, got %v", n.NumberValue)
		}
		u.ID = int64(n.NumberValue)
	}
	for key, dst := range map[string]*string{"name": &u.Name, "email": &u.Email} {
		if v, ok := f[key]; ok {
			sv, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return models.User{}, fmt.Errorf("%s must be a string", key)
			}
			*dst = sv.StringValue
		}
	}
	if v, ok := f["role"]; ok {
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return models.User{}, fmt.Errorf("role must be a string")
		}
		u.Role = models.Role(sv.StringValue)
	}
	return u, nil
}

func toProtoUsers(list []models.User) *structpb.ListValue {
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(list))}
	for _, u := range list {
		out.Values = append(out.Values, structpb.NewStructValue(toProtoUser(u)))
	}
	return out
}

func fromProtoUsers(l *structpb.ListValue) ([]models.User, error) {
	out := make([]models.User, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		u, err := fromProtoUser(v.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", i, err)
		}
		out = append(out, u)
	}
	return out, nil
}
