package testimonial

type CreateTestimonialRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// UpdateTestimonialRequest applies Content when non-empty and Rating when positive.
type UpdateTestimonialRequest struct {
	Content string `json:"content" validate:"max=2000"`
	Rating  int    `json:"rating" validate:"gte=0,lte=5"`
}
