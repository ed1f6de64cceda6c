package user

// Decision is the outcome of gating a session against a set of required roles.
type Decision int

const (
	// DecisionUnauthenticated: no session; the caller must redirect to login.
	DecisionUnauthenticated Decision = iota
	// DecisionWrongRole: session present but its role is not in the required
	// set; the caller must redirect to the user's default landing route.
	DecisionWrongRole
	// DecisionPendingApproval: role matches but the account is not Active;
	// the caller must render a blocking notice offering only logout.
	DecisionPendingApproval
	// DecisionGranted: protected content may be rendered.
	DecisionGranted
)

func (d Decision) String() string {
	switch d {
	case DecisionUnauthenticated:
		return "unauthenticated"
	case DecisionWrongRole:
		return "wrong_role"
	case DecisionPendingApproval:
		return "pending_approval"
	case DecisionGranted:
		return "granted"
	}
	return "unknown"
}

// Authorize decides whether usr may reach content restricted to the required
// roles. The evaluation order is fixed and must not be reordered:
// existence check, then role check, then status check.
// An empty required set only gates on existence and status.
func Authorize(usr *User, required ...Role) Decision {
	if usr == nil {
		return DecisionUnauthenticated
	}
	if len(required) > 0 && !roleIn(usr.Role, required) {
		return DecisionWrongRole
	}
	if usr.Status != StatusActive {
		return DecisionPendingApproval
	}
	return DecisionGranted
}

func roleIn(role Role, roles []Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Landing paths per role; unauthenticated users land on login.
const (
	LoginPath   = "/v1/users/login"
	AdminPath   = "/v1/admin"
	TeacherPath = "/v1/teacher"
	StudentPath = "/v1/student"
)

// LandingPath resolves the default landing route for usr.
func LandingPath(usr *User) string {
	if usr == nil {
		return LoginPath
	}
	switch usr.Role {
	case RoleAdmin:
		return AdminPath
	case RoleTeacher:
		return TeacherPath
	default:
		return StudentPath
	}
}
