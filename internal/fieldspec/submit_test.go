package fieldspec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatepass/vehicle-access/internal/model"
)

func TestSubmit_AppliesDefaults(t *testing.T) {
	out, err := Submit(People(), map[string]any{
		"name":         "김철수",
		"organization": "한빛물류",
	})
	require.NoError(t, err)

	require.Equal(t, model.VIPNone, out["vip_level"])
	require.Equal(t, model.StatusActive, out["status"])
	require.Equal(t, false, out["is_worker"]) // default "false" coerced
}

func TestSubmit_RequiredFieldMissing(t *testing.T) {
	_, err := Submit(People(), map[string]any{"organization": "한빛물류"})
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Equal(t, "name", ve.Key)
}

func TestSubmit_RequiredFieldBlankString(t *testing.T) {
	_, err := Submit(People(), map[string]any{"name": "   "})
	require.Error(t, err)
}

func TestSubmit_BooleanCoercion(t *testing.T) {
	out, err := Submit(People(), map[string]any{"name": "김철수", "is_worker": "true"})
	require.NoError(t, err)
	require.Equal(t, true, out["is_worker"])

	_, err = Submit(People(), map[string]any{"name": "김철수", "is_worker": "yes"})
	require.Error(t, err)
}

func TestSubmit_DateCoercion(t *testing.T) {
	out, err := Submit(People(), map[string]any{
		"name":                "김철수",
		"activity_start_date": "2026-03-01",
	})
	require.NoError(t, err)

	ts, ok := out["activity_start_date"].(time.Time)
	require.True(t, ok)
	require.Equal(t, 2026, ts.Year())
	require.Equal(t, time.March, ts.Month())

	// Empty date strings are dropped, not errors.
	out, err = Submit(People(), map[string]any{"name": "김철수", "activity_end_date": ""})
	require.NoError(t, err)
	_, present := out["activity_end_date"]
	require.False(t, present)

	_, err = Submit(People(), map[string]any{"name": "김철수", "activity_start_date": "03/01/2026"})
	require.Error(t, err)
}

func TestSubmit_GeneratesOrgDeptPos(t *testing.T) {
	out, err := Submit(People(), map[string]any{
		"name":         "김철수",
		"organization": "한빛물류",
		"department":   "운송팀",
		"position":     "팀장",
	})
	require.NoError(t, err)
	require.Equal(t, "한빛물류 / 운송팀 / 팀장", out["org_dept_pos"])
}

func TestSubmit_GeneratorSkipsBlanks(t *testing.T) {
	out, err := Submit(People(), map[string]any{
		"name":         "김철수",
		"organization": "한빛물류",
		"position":     "팀장",
	})
	require.NoError(t, err)
	require.Equal(t, "한빛물류 / 팀장", out["org_dept_pos"])

	// No components at all: the field stays unset.
	out, err = Submit(People(), map[string]any{"name": "김철수"})
	require.NoError(t, err)
	_, present := out["org_dept_pos"]
	require.False(t, present)
}

func TestSubmit_DoesNotMutateInput(t *testing.T) {
	form := map[string]any{"name": "김철수", "is_worker": "true"}
	_, err := Submit(People(), form)
	require.NoError(t, err)
	require.Equal(t, "true", form["is_worker"])
}

func TestByEntity(t *testing.T) {
	for _, name := range []string{"people", "vehicles", "records"} {
		fields, ok := ByEntity(name)
		require.True(t, ok, name)
		require.NotEmpty(t, fields)
	}
	_, ok := ByEntity("shows")
	require.False(t, ok)
}

func TestVehicleFields_SubmitComposesRow(t *testing.T) {
	out, err := Submit(Vehicles(), map[string]any{
		"plate_number":         "12가3456",
		"is_free_pass_enabled": "true",
	})
	require.NoError(t, err)
	require.Equal(t, "12가3456", Str(out, "plate_number"))
	require.True(t, Bool(out, "is_free_pass_enabled"))
	require.False(t, Bool(out, "is_public_vehicle"))
	require.Equal(t, model.StatusActive, Str(out, "status"))
	require.Nil(t, StrPtr(out, "owner_department"))
}
