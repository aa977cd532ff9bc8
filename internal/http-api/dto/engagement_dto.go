package dto

type CommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

type UserReviewRequest struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=10"`
	ReviewText string `json:"review_text" binding:"required,min=1,max=10000"`
}

type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}
