package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	c := BuiltinCatalog()
	assert.Equal(t, []string{WellnessSurvey, ImmunizationImport}, c.Names())

	d, err := c.Lookup(WellnessSurvey)
	require.NoError(t, err)
	assert.Len(t, d.Required, 111)
	assert.Equal(t, "StartDate", d.Required[0])
	assert.Equal(t, "rdem_degree", d.Required[len(d.Required)-1])
	assert.Equal(t, DefaultDurationColumn, d.DurationColumn)
	assert.Equal(t, []Expectation{
		{Column: "StartDate", Type: TypeTimestamp},
		{Column: "EndDate", Type: TypeTimestamp},
		{Column: "RecordedDate", Type: TypeTimestamp},
	}, d.Expectations())

	imm, err := c.Lookup(ImmunizationImport)
	require.NoError(t, err)
	assert.Contains(t, imm.Expectations(), Expectation{Column: "DoseNumber", Type: TypeInteger})
}

func TestCatalog_LookupUnknown(t *testing.T) {
	_, err := BuiltinCatalog().Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownSchema)
	assert.Contains(t, err.Error(), WellnessSurvey)
}

func TestCatalog_AddReplaces(t *testing.T) {
	c, err := NewCatalog(Descriptor{Name: "a", Required: []string{"x"}})
	require.NoError(t, err)
	require.NoError(t, c.Add(Descriptor{Name: "a", Required: []string{"y"}}))
	require.NoError(t, c.Add(Descriptor{Name: "b", Required: []string{"z"}}))

	assert.Equal(t, []string{"a", "b"}, c.Names())
	d, err := c.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, d.Required)
}

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Descriptor
		wantErr string
	}{
		{
			name: "valid",
			d: Descriptor{
				Name:           "intake",
				Required:       []string{"StartDate", "Dose", "Duration"},
				Types:          map[string]Type{"StartDate": TypeTimestamp, "Dose": TypeInteger},
				DurationColumn: "Duration",
			},
		},
		{name: "missing name", d: Descriptor{Required: []string{"a"}}, wantErr: "name is required"},
		{name: "no columns", d: Descriptor{Name: "x"}, wantErr: "at least one required column"},
		{name: "duplicate column", d: Descriptor{Name: "x", Required: []string{"a", "a"}}, wantErr: "listed twice"},
		{name: "blank column", d: Descriptor{Name: "x", Required: []string{" "}}, wantErr: "must not be blank"},
		{
			name:    "type on optional column",
			d:       Descriptor{Name: "x", Required: []string{"a"}, Types: map[string]Type{"b": TypeInteger}},
			wantErr: "not required",
		},
		{
			name:    "unsupported type",
			d:       Descriptor{Name: "x", Required: []string{"a"}, Types: map[string]Type{"a": "float"}},
			wantErr: "unsupported type",
		},
		{
			name:    "duration column not required",
			d:       Descriptor{Name: "x", Required: []string{"a"}, DurationColumn: "b"},
			wantErr: "duration column",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpectations_FollowRequiredOrder(t *testing.T) {
	d := Descriptor{
		Name:     "x",
		Required: []string{"c", "a", "b"},
		Types:    map[string]Type{"b": TypeInteger, "c": TypeTimestamp, "zz": TypeInteger},
	}
	assert.Equal(t, []Expectation{
		{Column: "c", Type: TypeTimestamp},
		{Column: "b", Type: TypeInteger},
	}, d.Expectations())
}
