package models

type Testimonial struct {
	Meta
	Author string `json:"author"`
	Role   string `json:"role"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating"`
}
