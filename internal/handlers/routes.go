package handlers

import (
	"github.com/gin-gonic/gin"
)

// Routes collects the handlers to mount. Nil handlers are skipped.
type Routes struct {
	Listings   *ListingHandler
	Search     *SearchHandler
	Leads      *LeadHandler
	Admin      *AdminHandler
	Limiter    Limiter
	AdminToken string
}

// Register mounts every route on r
func (rt Routes) Register(r gin.IRouter) {
	api := r.Group("/api")

	// Filter schema and reducer
	api.GET("/schema/categories", Categories)
	api.GET("/schema/categories/:category/fields", CategoryFields)
	api.POST("/filters/apply", ApplyFilter)

	if rt.Listings != nil {
		public := api.Group("/public")
		public.GET("/properties", rt.Listings.List)
		public.GET("/properties/:id", rt.Listings.Get)
		public.GET("/stats", rt.Listings.Stats)
	}

	if rt.Search != nil {
		api.GET("/search", rt.Search.Search)
		api.GET("/search/facets", rt.Search.Facets)
	}

	if rt.Leads != nil {
		var limited []gin.HandlerFunc
		if rt.Limiter != nil {
			limited = append(limited, RateLimit(rt.Limiter))
		}
		api.POST("/queries", append(limited, rt.Leads.SubmitQuery)...)
		api.POST("/brokers", append(limited, rt.Leads.SubmitBroker)...)
		api.GET("/pre-launch", rt.Leads.PreLaunch)
	}

	if rt.Admin != nil {
		admin := api.Group("/admin", AdminAuth(rt.AdminToken))
		{
			admin.GET("/stats", rt.Admin.GetStats)
			admin.GET("/price-distribution", rt.Admin.GetPriceDistribution)

			// Moderation
			admin.PATCH("/properties/:id/status", rt.Admin.UpdateListingStatus)
			admin.DELETE("/properties/:id", rt.Admin.DeleteListing)

			// KV entities: queries, brokers, pre-launch projects
			admin.GET("/queries", rt.Admin.ListEntities)
			admin.GET("/entities/:entity", rt.Admin.ListEntities)
			admin.POST("/entities/:entity", rt.Admin.CreateEntity)
			admin.PATCH("/entities/:entity/:id", rt.Admin.UpdateEntity)
			admin.DELETE("/entities/:entity/:id", rt.Admin.DeleteEntity)
		}

		reindex := api.Group("/search/reindex", AdminAuth(rt.AdminToken))
		reindex.POST("", rt.Admin.TriggerReindex)
		reindex.GET("/status", rt.Admin.GetReindexStatus)
	}
}
