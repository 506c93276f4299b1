// Package access holds the authorization policy shared by every module.
//
// Services ask a single question, CanAccess(caller, resource, action,
// owners...), instead of comparing roles inline.
package access

import (
	"hotel/internal/domain"

	"github.com/gin-gonic/gin"
)

type Resource string

const (
	Reservation Resource = "reservation"
	Payment     Resource = "payment"
	Room        Resource = "room"
	Message     Resource = "message"
	BlogPost    Resource = "blog_post"
	Testimonial Resource = "testimonial"
	Statistics  Resource = "statistics"
	User        Resource = "user"
)

type Action string

const (
	Read      Action = "read"
	List      Action = "list"
	Create    Action = "create"
	Update    Action = "update"
	Cancel    Action = "cancel"
	Delete    Action = "delete"
	SetStatus Action = "set_status"
	Approve   Action = "approve"
	MarkRead  Action = "mark_read"
)

type Caller struct {
	UserID int64
	Role   domain.UserRole
}

func (c Caller) IsStaff() bool { return c.Role.IsStaff() }

// rule grants an action to the listed roles and, when owner is set, to any
// caller whose id is among the resource owners.
type rule struct {
	owner bool
	roles []domain.UserRole
}

var (
	staff         = []domain.UserRole{domain.RoleAdmin, domain.RoleManager, domain.RoleReceptionist}
	adminManager  = []domain.UserRole{domain.RoleAdmin, domain.RoleManager}
	adminOnly     = []domain.UserRole{domain.RoleAdmin}
	authenticated = []domain.UserRole{domain.RoleClient, domain.RoleReceptionist, domain.RoleManager, domain.RoleAdmin}
)

var policy = map[Resource]map[Action]rule{
	Reservation: {
		Read:      {owner: true, roles: staff},
		List:      {roles: staff},
		Create:    {roles: authenticated},
		Update:    {owner: true, roles: staff},
		Cancel:    {owner: true, roles: staff},
		SetStatus: {roles: staff},
	},
	Payment: {
		Read:      {owner: true, roles: adminManager},
		List:      {owner: true, roles: staff},
		Create:    {owner: true, roles: staff},
		SetStatus: {roles: adminManager},
	},
	Room: {
		Create: {roles: adminManager},
		Update: {roles: adminManager},
		Delete: {roles: adminOnly},
	},
	Message: {
		Read:     {owner: true},
		Delete:   {owner: true},
		MarkRead: {owner: true},
	},
	BlogPost: {
		Read:   {roles: adminManager},
		Create: {roles: adminManager},
		Update: {owner: true, roles: adminOnly},
		Delete: {owner: true, roles: adminOnly},
	},
	Testimonial: {
		List:    {roles: adminManager},
		Update:  {owner: true, roles: adminManager},
		Delete:  {owner: true, roles: adminManager},
		Approve: {roles: adminManager},
	},
	Statistics: {
		Read:   {roles: adminManager},
		Create: {roles: adminManager},
	},
	User: {
		List:   {roles: adminManager},
		Update: {roles: adminOnly},
	},
}

// CanAccess reports whether caller may perform action on resource.
// ownerIDs are the users that own the concrete record, if any.
func CanAccess(caller Caller, resource Resource, action Action, ownerIDs ...int64) bool {
	if caller.UserID == 0 {
		return false
	}
	r, ok := policy[resource][action]
	if !ok {
		return false
	}
	for _, role := range r.roles {
		if caller.Role == role {
			return true
		}
	}
	if r.owner {
		for _, id := range ownerIDs {
			if id == caller.UserID {
				return true
			}
		}
	}
	return false
}

// FromContext reads the identity placed on the request by the JWT middleware.
func FromContext(c *gin.Context) Caller {
	return Caller{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}
}
