package domain

type StaffRole string

const (
	RoleSuperAdmin        StaffRole = "Super Admin"
	RoleGeneralAdmin      StaffRole = "General Admin"
	RoleManager           StaffRole = "Manager"
	RoleMarketingDirector StaffRole = "Marketing Director"
	RoleReception         StaffRole = "Reception"
	RoleHousekeeping      StaffRole = "Housekeeping"
	RoleMaintenance       StaffRole = "Maintenance"
	RoleFinance           StaffRole = "Finance"
	RoleGarden            StaffRole = "Garden"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleGeneralAdmin, RoleManager, RoleMarketingDirector,
		RoleReception, RoleHousekeeping, RoleMaintenance, RoleFinance, RoleGarden:
		return true
	}
	return false
}

// AdminSection tags one feature area of the admin UI. Used both for staff
// permissions and for subscription-plan feature gating.
type AdminSection string

type Staff struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Role                StaffRole      `json:"role"`
	Email               string         `json:"email"`
	Password            string         `json:"password,omitempty"`
	Permissions         []AdminSection `json:"permissions"`
	OnboardingCompleted bool           `json:"onboardingCompleted,omitempty"`
}

func (s Staff) Key() string { return s.ID }

func (s Staff) Public() Staff {
	s.Password = ""
	return s
}

type TaskStatus string

const (
	TaskTodo          TaskStatus = "Todo"
	TaskInProgress    TaskStatus = "InProgress"
	TaskAwaitingCheck TaskStatus = "AwaitingCheck"
	TaskDone          TaskStatus = "Done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskAwaitingCheck, TaskDone:
		return true
	}
	return false
}

type StaffTask struct {
	ID                string     `json:"id"`
	Description       string     `json:"description"`
	Status            TaskStatus `json:"status"`
	AssigneeID        string     `json:"assigneeId,omitempty"`
	RoomID            *int       `json:"roomId,omitempty"`
	BookingID         string     `json:"bookingId,omitempty"`
	SupervisorComment string     `json:"supervisorComment,omitempty"`
	ProjectID         string     `json:"projectId,omitempty"`
}

func (t StaffTask) Key() string { return t.ID }

type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	OwnerID     string   `json:"ownerId"`
	TaskIDs     []string `json:"taskIds"`
	CreatedAt   string   `json:"createdAt"`
}

func (p Project) Key() string { return p.ID }
