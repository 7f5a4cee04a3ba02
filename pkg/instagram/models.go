package instagram

// Profile is the normalized public metadata of an Instagram account
type Profile struct {
	ID             string `json:"id" yaml:"id"`
	Username       string `json:"username" yaml:"username"`
	FullName       string `json:"fullName" yaml:"fullName"`
	Biography      string `json:"biography" yaml:"biography"`
	FollowersCount int    `json:"followersCount" yaml:"followersCount"`
	FollowingCount int    `json:"followingCount" yaml:"followingCount"`
	IsPrivate      bool   `json:"isPrivate" yaml:"isPrivate"`
	IsVerified     bool   `json:"isVerified" yaml:"isVerified"`
	ProfilePicURL  string `json:"profilePicUrl" yaml:"profilePicUrl"`
}

// user mirrors data.user of the web_profile_info response.
// Edges are pointers so a missing edge is distinguishable from a zero count.
type user struct {
	Username        string     `json:"username"`
	FullName        string     `json:"full_name"`
	Biography       string     `json:"biography"`
	EdgeFollowedBy  *edgeCount `json:"edge_followed_by"`
	EdgeFollow      *edgeCount `json:"edge_follow"`
	IsPrivate       bool       `json:"is_private"`
	IsVerified      bool       `json:"is_verified"`
	ProfilePicURLHD string     `json:"profile_pic_url_hd"`
}

type edgeCount struct {
	Count int `json:"count"`
}

func (e *edgeCount) value() int {
	if e == nil {
		return 0
	}
	return e.Count
}

// toProfile converts the raw user; id is passed separately since Instagram sends it as either string or number
func (u *user) toProfile(id string) *Profile {
	return &Profile{
		ID:             id,
		Username:       u.Username,
		FullName:       u.FullName,
		Biography:      u.Biography,
		FollowersCount: u.EdgeFollowedBy.value(),
		FollowingCount: u.EdgeFollow.value(),
		IsPrivate:      u.IsPrivate,
		IsVerified:     u.IsVerified,
		ProfilePicURL:  u.ProfilePicURLHD,
	}
}
