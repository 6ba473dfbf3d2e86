package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	products := api.Group("/products")
	products.GET("", s.listProducts)
	products.POST("", s.createProduct)
	products.GET("/trending", s.getTrendingProducts)
	products.GET("/:id", s.getProduct)
	products.PUT("/:id", s.updateProduct)
	products.DELETE("/:id", s.deleteProduct)
	products.GET("/:id/recommendations", s.getRecommendations)
	products.GET("/:id/reviews", s.listProductReviews)
	products.GET("/:id/reviews/stats", s.getProductReviewStats)

	api.POST("/reviews", s.createReview)

	carts := api.Group("/cart")
	carts.GET("/:session_id", s.getCart)
	carts.POST("/:session_id/items", s.addCartItem)
	carts.DELETE("/:session_id/items/:item_id", s.removeCartItem)
	carts.DELETE("/:session_id", s.clearCart)

	users := api.Group("/users")
	users.POST("", s.createUser)
	users.GET("/:id", s.getUser)
	users.GET("/:id/favorites", s.listFavorites)
	users.POST("/:id/favorites/:product_id", s.addFavorite)
	users.DELETE("/:id/favorites/:product_id", s.removeFavorite)

	api.POST("/status", s.createStatusCheck)
	api.GET("/status", s.listStatusChecks)

	api.GET("/dashboard/stats", s.getDashboardStats)

	perf := api.Group("/performance")
	perf.GET("/cache-stats", s.getCacheStats)
	perf.POST("/clear-cache", s.clearCache)
	perf.GET("/database-stats", s.getDatabaseStats)
	perf.POST("/optimize-database", s.optimizeDatabase)
	perf.GET("/analyze-query/:collection", s.analyzeQuery)
}
