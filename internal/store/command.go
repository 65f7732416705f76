package store

import "github.com/spec-kit/village-portal/internal/domain"

// Kind names a command variant.
type Kind string

const (
	KindAddUser              Kind = "ADD_USER"
	KindUpdateUser           Kind = "UPDATE_USER"
	KindReplaceUsers         Kind = "SET_USERS"
	KindAddStaff             Kind = "ADD_STAFF"
	KindUpdateStaff          Kind = "UPDATE_STAFF"
	KindDeleteStaff          Kind = "DELETE_STAFF"
	KindAddBid               Kind = "ADD_BID"
	KindUpdateBid            Kind = "UPDATE_BID"
	KindDeleteBid            Kind = "DELETE_BID"
	KindAddBidSubmission     Kind = "ADD_BID_SUBMISSION"
	KindAddAnnouncement      Kind = "ADD_ANNOUNCEMENT"
	KindUpdateAnnouncement   Kind = "UPDATE_ANNOUNCEMENT"
	KindDeleteAnnouncement   Kind = "DELETE_ANNOUNCEMENT"
	KindAddServiceRequest    Kind = "ADD_SERVICE_REQUEST"
	KindUpdateServiceRequest Kind = "UPDATE_SERVICE_REQUEST"
)

// Command is an instruction the store applies to produce a new snapshot.
// The set of variants is closed: only types in this package implement it.
type Command interface {
	Kind() Kind
	// EntityID identifies the record the command targets.
	EntityID() string
	sealed()
}

type AddUser struct{ User domain.User }
type UpdateUser struct{ User domain.User }

// ReplaceUsers swaps the whole user collection.
type ReplaceUsers struct{ Users []domain.User }

type AddStaff struct{ Staff domain.Staff }
type UpdateStaff struct{ Staff domain.Staff }
type DeleteStaff struct{ ID string }

type AddBid struct{ Bid domain.Bid }
type UpdateBid struct{ Bid domain.Bid }
type DeleteBid struct{ ID string }

type AddBidSubmission struct{ Submission domain.BidSubmission }

type AddAnnouncement struct{ Announcement domain.Announcement }
type UpdateAnnouncement struct{ Announcement domain.Announcement }
type DeleteAnnouncement struct{ ID string }

type AddServiceRequest struct{ Request domain.ServiceRequest }
type UpdateServiceRequest struct{ Request domain.ServiceRequest }

func (AddUser) Kind() Kind              { return KindAddUser }
func (UpdateUser) Kind() Kind           { return KindUpdateUser }
func (ReplaceUsers) Kind() Kind         { return KindReplaceUsers }
func (AddStaff) Kind() Kind             { return KindAddStaff }
func (UpdateStaff) Kind() Kind          { return KindUpdateStaff }
func (DeleteStaff) Kind() Kind          { return KindDeleteStaff }
func (AddBid) Kind() Kind               { return KindAddBid }
func (UpdateBid) Kind() Kind            { return KindUpdateBid }
func (DeleteBid) Kind() Kind            { return KindDeleteBid }
func (AddBidSubmission) Kind() Kind     { return KindAddBidSubmission }
func (AddAnnouncement) Kind() Kind      { return KindAddAnnouncement }
func (UpdateAnnouncement) Kind() Kind   { return KindUpdateAnnouncement }
func (DeleteAnnouncement) Kind() Kind   { return KindDeleteAnnouncement }
func (AddServiceRequest) Kind() Kind    { return KindAddServiceRequest }
func (UpdateServiceRequest) Kind() Kind { return KindUpdateServiceRequest }

func (c AddUser) EntityID() string              { return c.User.ID }
func (c UpdateUser) EntityID() string           { return c.User.ID }
func (ReplaceUsers) EntityID() string           { return "" }
func (c AddStaff) EntityID() string             { return c.Staff.ID }
func (c UpdateStaff) EntityID() string          { return c.Staff.ID }
func (c DeleteStaff) EntityID() string          { return c.ID }
func (c AddBid) EntityID() string               { return c.Bid.ID }
func (c UpdateBid) EntityID() string            { return c.Bid.ID }
func (c DeleteBid) EntityID() string            { return c.ID }
func (c AddBidSubmission) EntityID() string     { return c.Submission.ID }
func (c AddAnnouncement) EntityID() string      { return c.Announcement.ID }
func (c UpdateAnnouncement) EntityID() string   { return c.Announcement.ID }
func (c DeleteAnnouncement) EntityID() string   { return c.ID }
func (c AddServiceRequest) EntityID() string    { return c.Request.ID }
func (c UpdateServiceRequest) EntityID() string { return c.Request.ID }

func (AddUser) sealed()              {}
func (UpdateUser) sealed()           {}
func (ReplaceUsers) sealed()         {}
func (AddStaff) sealed()             {}
func (UpdateStaff) sealed()          {}
func (DeleteStaff) sealed()          {}
func (AddBid) sealed()               {}
func (UpdateBid) sealed()            {}
func (DeleteBid) sealed()            {}
func (AddBidSubmission) sealed()     {}
func (AddAnnouncement) sealed()      {}
func (UpdateAnnouncement) sealed()   {}
func (DeleteAnnouncement) sealed()   {}
func (AddServiceRequest) sealed()    {}
func (UpdateServiceRequest) sealed() {}
