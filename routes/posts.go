package routes

import (
	"nostalgic-food-map/handlers/feed"
	"nostalgic-food-map/handlers/posts"
	"nostalgic-food-map/handlers/posts/comment"
	"nostalgic-food-map/handlers/posts/likes"
	"nostalgic-food-map/handlers/posts/report"
	"nostalgic-food-map/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine, secret, loginURL string) {
	comments := comment.New(comment.NewHub())

	// Routes publiques, la session est lue si elle est présente
	publicRoutes := r.Group("/posts")
	publicRoutes.Use(middleware.SessionAuth(secret))
	{
		publicRoutes.GET("", feed.New(loginURL).GetFeed)
		publicRoutes.GET("/:id", posts.GetPostByID)
		publicRoutes.GET("/:id/comments", comments.GetComments)
		publicRoutes.GET("/:id/comments/stream", comments.HandleSSE)
	}

	// Routes protégées
	postsRoutes := r.Group("/posts")
	postsRoutes.Use(middleware.RequireSession(secret))
	{
		postsRoutes.POST("", posts.CreatePost)

		// Routes des interactions
		postsRoutes.POST("/:id/like", likes.ToggleLike)
		postsRoutes.POST("/:id/comments", comments.CreateComment)
		postsRoutes.POST("/:id/report", report.ReportPost)
	}
}
