package fieldspec

import (
	"strings"

	"github.com/gatepass/vehicle-access/internal/model"
)

// Per-entity field configurations. These drive the admin screens end to
// end: the client renders its filter drawer, add modal and detail modal
// from GET /v1/fields/:entity, and the create handlers run Submit over
// the same specs.

var statusOptions = []Option{
	{Value: model.StatusActive, Label: "활성"},
	{Value: model.StatusInactive, Label: "비활성"},
	{Value: model.StatusBlocked, Label: "차단"},
}

var activityPair = &Pair{StartKey: "activity_start_date", EndKey: "activity_end_date"}
var accessPair = &Pair{StartKey: "access_start_date", EndKey: "access_end_date"}
var enteredPair = &Pair{StartKey: "start_date", EndKey: "end_date"}

// ComposeOrgDeptPos derives the display string "소속 / 부서 / 직급" from the
// individual fields, skipping blanks.
func ComposeOrgDeptPos(form map[string]any) (any, bool) {
	parts := []string{}
	for _, key := range []string{"organization", "department", "position"} {
		if s, ok := form[key].(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	if len(parts) == 0 {
		return nil, false
	}
	return strings.Join(parts, " / "), true
}

// People returns the field specification for driver/visitor records.
func People() []Field {
	return []Field{
		{Key: "name", Label: "이름", Placeholder: "이름을 입력하세요", Kind: KindText, Required: true},
		{Key: "organization", Label: "소속", Placeholder: "소속을 입력하세요", Kind: KindText},
		{Key: "department", Label: "부서", Placeholder: "부서를 입력하세요", Kind: KindText},
		{Key: "position", Label: "직급", Placeholder: "직급을 입력하세요", Kind: KindText},
		{Key: "org_dept_pos", Label: "소속/부서/직급", Placeholder: "자동 생성됩니다", Kind: KindText, Generate: ComposeOrgDeptPos},
		{Key: "phone_number", Label: "전화번호", Placeholder: "전화번호를 입력하세요", Kind: KindText},
		{Key: "vip_level", Label: "VIP 레벨", Placeholder: "VIP 레벨을 선택하세요", Kind: KindSelect, Required: true,
			Default: model.VIPNone,
			Options: []Option{
				{Value: model.VIPLevel1, Label: "VIP1"},
				{Value: model.VIPLevel2, Label: "VIP2"},
				{Value: model.VIPLevel3, Label: "VIP3"},
				{Value: model.VIPStaff, Label: "직원"},
				{Value: model.VIPInternalOrg, Label: "대내기관"},
				{Value: model.VIPExternal, Label: "외부업체"},
				{Value: model.VIPGroupVisit, Label: "단체방문"},
				{Value: model.VIPNone, Label: "일반"},
			}},
		{Key: "is_worker", Label: "외부용역", Placeholder: "외부용역을 선택하세요", Kind: KindBoolean,
			Default: "false",
			Options: []Option{
				{Value: "false", Label: "외부 용역 X"},
				{Value: "true", Label: "외부 용역 O"},
			}},
		{Key: "contact_person_name", Label: "담당자명", Placeholder: "담당자명을 입력하세요", Kind: KindText},
		{Key: "contact_person_phone", Label: "담당자번호", Placeholder: "담당자번호를 입력하세요", Kind: KindText},
		{Key: "status", Label: "상태", Placeholder: "상태를 선택하세요", Kind: KindSelect,
			Default: model.StatusActive, Options: statusOptions},
		{Key: "activity_start_date", Label: "활동 시작일", Placeholder: "활동 시작일을 선택하세요", Kind: KindDate, Pair: activityPair},
		{Key: "activity_end_date", Label: "활동 종료일", Placeholder: "활동 종료일을 선택하세요", Kind: KindDate, Pair: activityPair},
		{Key: "photo_path", Label: "사진", Placeholder: "사진을 선택하세요", Kind: KindFile},
	}
}

// Vehicles returns the field specification for vehicle records.
func Vehicles() []Field {
	return []Field{
		{Key: "plate_number", Label: "차량번호", Placeholder: "차량번호를 입력하세요", Kind: KindText, Required: true},
		{Key: "vehicle_type", Label: "차량종류", Placeholder: "차량종류를 입력하세요", Kind: KindText},
		{Key: "is_public_vehicle", Label: "공용차량", Placeholder: "공용 여부를 선택하세요", Kind: KindBoolean,
			Default: "false",
			Options: []Option{
				{Value: "false", Label: "개인"},
				{Value: "true", Label: "공용"},
			}},
		{Key: "owner_department", Label: "소유부서", Placeholder: "소유부서를 입력하세요", Kind: KindText},
		{Key: "access_start_date", Label: "접근 시작일", Placeholder: "접근 시작일을 선택하세요", Kind: KindDate, Pair: accessPair},
		{Key: "access_end_date", Label: "접근 종료일", Placeholder: "접근 종료일을 선택하세요", Kind: KindDate, Pair: accessPair},
		{Key: "is_free_pass_enabled", Label: "프리패스", Placeholder: "프리패스 여부를 선택하세요", Kind: KindBoolean,
			Default: "false",
			Options: []Option{
				{Value: "false", Label: "프리패스 X"},
				{Value: "true", Label: "프리패스 O"},
			}},
		{Key: "special_notes", Label: "특이사항", Placeholder: "특이사항을 입력하세요", Kind: KindText},
		{Key: "status", Label: "상태", Placeholder: "상태를 선택하세요", Kind: KindSelect,
			Default: model.StatusActive, Options: statusOptions},
	}
}

// Records returns the filter specification for the access-record log.
// Records are created by the kiosk, never through an add form, so every
// field here is a filter.
func Records() []Field {
	return []Field{
		{Key: "plate_number", Label: "차량번호", Placeholder: "차량번호를 입력하세요", Kind: KindText},
		{Key: "vehicle_type", Label: "차량종류", Placeholder: "차량종류를 입력하세요", Kind: KindText},
		{Key: "name", Label: "이름", Placeholder: "이름을 입력하세요", Kind: KindText},
		{Key: "org_dept_pos", Label: "소속", Placeholder: "소속을 입력하세요", Kind: KindText},
		{Key: "phone", Label: "전화번호", Placeholder: "전화번호를 입력하세요", Kind: KindText},
		{Key: "passengers", Label: "동승자", Placeholder: "동승자를 입력하세요", Kind: KindText},
		{Key: "purpose", Label: "방문목적", Placeholder: "방문목적을 입력하세요", Kind: KindText},
		{Key: "notes", Label: "비고", Placeholder: "비고를 입력하세요", Kind: KindText},
		{Key: "start_date", Label: "시작일", Placeholder: "시작일을 선택하세요", Kind: KindDate, Pair: enteredPair},
		{Key: "end_date", Label: "종료일", Placeholder: "종료일을 선택하세요", Kind: KindDate, Pair: enteredPair},
	}
}

// ByEntity resolves a field configuration by its URL name.
func ByEntity(name string) ([]Field, bool) {
	switch name {
	case "people":
		return People(), true
	case "vehicles":
		return Vehicles(), true
	case "records":
		return Records(), true
	}
	return nil, false
}
