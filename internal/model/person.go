package model

import "time"

// VIP classification values. The set is open-ended: the column stores the
// raw string and unknown values simply render without a badge.
const (
	VIPLevel1      = "VIP1"
	VIPLevel2      = "VIP2"
	VIPLevel3      = "VIP3"
	VIPStaff       = "직원"
	VIPInternalOrg = "대내기관"
	VIPExternal    = "외부업체"
	VIPGroupVisit  = "단체방문"
	VIPNone        = "일반"
)

// Person is a driver or visitor registered in the `people` table. A person
// may be associated with any number of vehicles through `vehicle_people`.
// OrgDeptPos is a derived display string ("소속 / 부서 / 직급") composed at
// write time; the individual columns stay authoritative.
type Person struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	PhoneNumber        string     `json:"phone_number"`
	Organization       string     `json:"organization"`
	Department         *string    `json:"department"`
	Position           *string    `json:"position"`
	OrgDeptPos         *string    `json:"org_dept_pos"`
	PhotoPath          *string    `json:"photo_path"`
	VIPLevel           string     `json:"vip_level"`
	IsWorker           bool       `json:"is_worker"`
	ActivityStartDate  *time.Time `json:"activity_start_date"`
	ActivityEndDate    *time.Time `json:"activity_end_date"`
	ContactPersonName  *string    `json:"contact_person_name"`
	ContactPersonPhone *string    `json:"contact_person_phone"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
