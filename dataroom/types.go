package dataroom

import "time"

// EntityStatus is the lifecycle state shared by all records.
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusDisabled EntityStatus = "disabled"
	StatusDeleted  EntityStatus = "deleted"
)

// DataRoomSource distinguishes rooms created here from imported ones.
type DataRoomSource string

const (
	SourceOriginal DataRoomSource = "original"
	SourceAnsarada DataRoomSource = "ansarada"
)

// UserRole is a user's role within a project.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleViewer UserRole = "viewer"
)

type Project struct {
	ID                       string       `json:"id"`
	CreatedAt                time.Time    `json:"created_at"`
	UpdatedAt                time.Time    `json:"updated_at"`
	Status                   EntityStatus `json:"status"`
	Name                     string       `json:"name"`
	Description              *string      `json:"description"`
	DataRoomIDs              []string     `json:"data_room_ids"`
	AccessibleUserProjectIDs []string     `json:"accessible_user_project_ids"`
}

type ProjectIn struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type DataRoom struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Status       EntityStatus   `json:"status"`
	Name         string         `json:"name"`
	Source       DataRoomSource `json:"source"`
	RootFolderID string         `json:"root_folder_id"`
}

type DataRoomIn struct {
	Name   string         `json:"name"`
	Source DataRoomSource `json:"source"`
}

type User struct {
	ID                       string       `json:"id"`
	CreatedAt                time.Time    `json:"created_at"`
	UpdatedAt                time.Time    `json:"updated_at"`
	Status                   EntityStatus `json:"status"`
	AuthProviderUserID       string       `json:"auth_provider_user_id"`
	AccessibleUserProjectIDs []string     `json:"accessible_user_project_ids"`
}

type UserIn struct {
	AuthProviderUserID string `json:"auth_provider_user_id"`
}

// AccessibleProject is a project a user can reach, annotated with the role
// granting access.
type AccessibleProject struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Status      EntityStatus `json:"status"`
	Role        UserRole     `json:"role"`
}

// ProjectUser is a project membership entry.
type ProjectUser struct {
	UserID             string       `json:"user_id"`
	AuthProviderUserID string       `json:"user_auth_provider_user_id"`
	Role               UserRole     `json:"user_role"`
	Status             EntityStatus `json:"user_status"`
}

// AddUserBody carries the role assigned when adding a user to a project.
type AddUserBody struct {
	Role UserRole `json:"user_role"`
}

type Folder struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DataRoomID     string    `json:"data_room_id"`
	ParentFolderID *string   `json:"parent_folder_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type FolderIn struct {
	Name           string  `json:"name"`
	DataRoomID     string  `json:"data_room_id"`
	ParentFolderID *string `json:"parent_folder_id"`
}

type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	DataRoomID string    `json:"data_room_id"`
	FolderID   string    `json:"folder_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DocumentIn struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	DataRoomID string `json:"data_room_id"`
	FolderID   string `json:"folder_id"`
}

// DocumentTree is a data room's full folder/document hierarchy.
type DocumentTree struct {
	DataRoomID string     `json:"data_room_id"`
	Folders    []Folder   `json:"folders"`
	Documents  []Document `json:"documents"`
}
