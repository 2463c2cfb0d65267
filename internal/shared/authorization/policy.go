package authorization

// Operation names the core actions subject to the policy table.
type Operation string

const (
	OpViewTicket      Operation = "ticket.view"
	OpEditTicketBody  Operation = "ticket.edit_body"
	OpChangeStatus    Operation = "ticket.change_status"
	OpChangePriority  Operation = "ticket.change_priority"
	OpAssignTicket    Operation = "ticket.assign"
	OpReopenClosed    Operation = "ticket.reopen_closed"
	OpComment         Operation = "comment.create"
	OpInternalComment Operation = "comment.create_internal"
	OpEditComment     Operation = "comment.edit"
	OpDeleteComment   Operation = "comment.delete"
	OpVote            Operation = "vote.toggle"
)

// permission describes who may perform an operation: any staff member
// (agent or admin), admin only, and/or the owner of the target resource.
// For ticket operations the owner is the creator; for comment operations
// it is the comment author.
type permission struct {
	staff bool
	admin bool
	owner bool
}

// policyTable is consulted at the top of each core operation. Scattering
// role checks per endpoint is deliberately avoided; every rule lives here.
var policyTable = map[Operation]permission{
	OpViewTicket:      {staff: true, owner: true},
	OpEditTicketBody:  {staff: true, owner: true},
	OpChangeStatus:    {staff: true, owner: true},
	OpChangePriority:  {staff: true},
	OpAssignTicket:    {staff: true},
	OpReopenClosed:    {staff: true},
	OpComment:         {staff: true, owner: true},
	OpInternalComment: {staff: true},
	OpEditComment:     {owner: true},
	OpDeleteComment:   {admin: true, owner: true},
	OpVote:            {staff: true, owner: true},
}

// Allows reports whether the actor may perform op against a resource owned
// by ownerID. Owner-scoped permissions only apply when the actor is the
// owner; role-scoped permissions apply regardless of ownership.
func Allows(actor Actor, op Operation, ownerID uint) bool {
	perm, ok := policyTable[op]
	if !ok {
		return false
	}
	if perm.admin && actor.Role.IsAdmin() {
		return true
	}
	if perm.staff && actor.Role.IsStaff() {
		return true
	}
	return perm.owner && actor.ID == ownerID
}

// AllowsRole reports whether the actor's role alone permits op, ignoring
// ownership. Used for operations with no owned target, such as creating
// internal notes.
func AllowsRole(actor Actor, op Operation) bool {
	perm, ok := policyTable[op]
	if !ok {
		return false
	}
	if perm.admin && actor.Role.IsAdmin() {
		return true
	}
	return perm.staff && actor.Role.IsStaff()
}
