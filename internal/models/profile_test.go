package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile_UnmarshalAge(t *testing.T) {
	tests := []struct {
		name    string
		age     string
		want    int
		wantErr bool
	}{
		{name: "number", age: `25`, want: 25},
		{name: "numeric string", age: `"25"`, want: 25},
		{name: "padded string", age: `" 31 "`, want: 31},
		{name: "whole float", age: `25.0`, want: 25},
		{name: "null", age: `null`, want: 0},
		{name: "out of range still decodes", age: `"101"`, want: 101},
		{name: "word", age: `"old"`, wantErr: true},
		{name: "fraction", age: `24.5`, wantErr: true},
		{name: "empty string", age: `""`, wantErr: true},
		{name: "bool", age: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p UserProfile
			err := json.Unmarshal([]byte(`{"name":"Ana","major":"CS","age":`+tt.age+`}`), &p)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Age)
			assert.Equal(t, "Ana", p.Name)
			assert.Equal(t, "CS", p.Major)
		})
	}
}

func TestUserProfile_UnmarshalWithoutAge(t *testing.T) {
	var p UserProfile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ana"}`), &p))

	assert.Equal(t, 0, p.Age)
	assert.Equal(t, "Ana", p.Name)
}

func TestUserProfile_MarshalKeepsNumericAge(t *testing.T) {
	data, err := json.Marshal(UserProfile{Name: "Ana", Age: 24})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"age":24`)
}
