package proto

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// NewStrings builds a Struct whose values are all strings.
func NewStrings(m map[string]string) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(m))
	for k, v := range m {
		fields[k] = structpb.NewStringValue(v)
	}
	return &structpb.Struct{Fields: fields}
}

// Strings flattens s into string values. Nested structs and lists are
// rejected; numbers and bools are formatted.
func Strings(s *structpb.Struct) (map[string]string, error) {
	out := make(map[string]string, len(s.GetFields()))
	for k, v := range s.GetFields() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			out[k] = kind.StringValue
		case *structpb.Value_NumberValue:
			out[k] = fmt.Sprint(kind.NumberValue)
		case *structpb.Value_BoolValue:
			out[k] = fmt.Sprint(kind.BoolValue)
		case *structpb.Value_NullValue:
			out[k] = ""
		default:
			return nil, fmt.Errorf("field %q: unsupported value type %T", k, kind)
		}
	}
	return out, nil
}

// StringField returns the string value of key, or "" when absent.
func StringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// StructField returns the nested struct at key, or nil.
func StructField(s *structpb.Struct, key string) *structpb.Struct {
	return s.GetFields()[key].GetStructValue()
}

// NewUpdateRequest wraps a patch for Update.
func NewUpdateRequest(email string, fields map[string]string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyEmail:  structpb.NewStringValue(email),
		KeyFields: structpb.NewStructValue(NewStrings(fields)),
	}}
}

// NewLoginResponse pairs an access token with the profile it unlocks.
func NewLoginResponse(token string, profile map[string]string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyAccessToken: structpb.NewStringValue(token),
		KeyProfile:     structpb.NewStructValue(NewStrings(profile)),
	}}
}
