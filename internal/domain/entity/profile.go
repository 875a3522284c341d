package entity

// User is the profile returned by the API for the token's owner.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email"`
	Role         string `json:"role"` // convener, learner
	Location     string `json:"location,omitempty"`
	Socials      string `json:"socials,omitempty"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// ProfileImage references a local file to upload with a profile edit.
type ProfileImage struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// ProfileFormData is transient edit-form state; empty fields are not sent.
// The server owns every rule on these fields.
type ProfileFormData struct {
	FirstName    string        `json:"firstName,omitempty"`
	LastName     string        `json:"lastName,omitempty"`
	Username     string        `json:"username,omitempty"`
	Password     string        `json:"password,omitempty"`
	Location     string        `json:"location,omitempty"`
	Socials      string        `json:"socials,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	ProfileImage *ProfileImage `json:"profileImage,omitempty"`
}

// ProfileFieldErrors holds optional per-field validation text.
type ProfileFieldErrors struct {
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	Location     string `json:"location,omitempty"`
	Socials      string `json:"socials,omitempty"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	General      string `json:"general,omitempty"`
}

// UpdateProfileResponse is discriminated by Error; Message only carries text
// for the fields that failed. User is the saved profile when the edit succeeded.
type UpdateProfileResponse struct {
	Error   bool               `json:"error"`
	Message ProfileFieldErrors `json:"message"`
	User    *User              `json:"user,omitempty"`
}

// ProfileFieldErrorsFromMap maps field names (JSON tags) to messages.
func ProfileFieldErrorsFromMap(m map[string]string) ProfileFieldErrors {
	var out ProfileFieldErrors
	for k, v := range m {
		switch k {
		case "firstName":
			out.FirstName = v
		case "lastName":
			out.LastName = v
		case "username":
			out.Username = v
		case "password":
			out.Password = v
		case "location":
			out.Location = v
		case "socials":
			out.Socials = v
		case "bio":
			out.Bio = v
		case "profileImage":
			out.ProfileImage = v
		default:
			out.General = v
		}
	}
	return out
}
