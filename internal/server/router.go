package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/medibridge/medibridge-backend/internal/handlers"
	"github.com/medibridge/medibridge-backend/internal/middleware"
)

type RouterConfig struct {
	HealthHandler    *handlers.HealthHandler
	KnowledgeHandler *handlers.KnowledgeHandler
	TaxonomyHandler  *handlers.TaxonomyHandler
	ConsultHandler   *handlers.ConsultHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api/v1")

	// Knowledge base
	conditions := api.Group("/conditions")
	{
		conditions.POST("", cfg.KnowledgeHandler.CreateCondition)
		conditions.GET("", cfg.KnowledgeHandler.ListConditions)
		conditions.GET("/search", cfg.KnowledgeHandler.SearchConditions)
		conditions.GET("/:id", cfg.KnowledgeHandler.GetCondition)
		conditions.PATCH("/:id", cfg.KnowledgeHandler.UpdateCondition)
		conditions.DELETE("/:id", cfg.KnowledgeHandler.DeleteCondition)

		conditions.POST("/:id/exclusion-methods/:methodID", cfg.KnowledgeHandler.LinkExclusionMethod)
		conditions.GET("/:id/exclusion-methods", cfg.KnowledgeHandler.ListExclusionMethodsForCondition)
		conditions.POST("/:id/treatment-plans", cfg.KnowledgeHandler.LinkTreatmentPlan)
		conditions.GET("/:id/treatment-plans", cfg.KnowledgeHandler.ListTreatmentPlansForCondition)
	}
	methods := api.Group("/exclusion-methods")
	{
		methods.POST("", cfg.KnowledgeHandler.CreateExclusionMethod)
		methods.GET("", cfg.KnowledgeHandler.ListExclusionMethods)
		methods.GET("/search", cfg.KnowledgeHandler.SearchExclusionMethods)
		methods.GET("/:id", cfg.KnowledgeHandler.GetExclusionMethod)
		methods.PATCH("/:id", cfg.KnowledgeHandler.UpdateExclusionMethod)
		methods.DELETE("/:id", cfg.KnowledgeHandler.DeleteExclusionMethod)
		methods.GET("/:id/conditions", cfg.KnowledgeHandler.ListConditionsForExclusionMethod)
	}
	plans := api.Group("/treatment-plans")
	{
		plans.POST("", cfg.KnowledgeHandler.CreateTreatmentPlan)
		plans.GET("", cfg.KnowledgeHandler.ListTreatmentPlans)
		plans.GET("/search", cfg.KnowledgeHandler.SearchTreatmentPlans)
		plans.GET("/:id", cfg.KnowledgeHandler.GetTreatmentPlan)
		plans.PATCH("/:id", cfg.KnowledgeHandler.UpdateTreatmentPlan)
		plans.DELETE("/:id", cfg.KnowledgeHandler.DeleteTreatmentPlan)
		plans.GET("/:id/conditions", cfg.KnowledgeHandler.ListConditionsForTreatmentPlan)
	}
	api.DELETE("/condition-exclusion-methods/:id", cfg.KnowledgeHandler.UnlinkExclusionMethod)
	api.PATCH("/condition-treatment-plans/:id", cfg.KnowledgeHandler.UpdateTreatmentPlanLink)
	api.DELETE("/condition-treatment-plans/:id", cfg.KnowledgeHandler.UnlinkTreatmentPlan)

	// Disease / symptom taxonomy
	diseases := api.Group("/diseases")
	{
		diseases.POST("", cfg.TaxonomyHandler.CreateDisease)
		diseases.GET("", cfg.TaxonomyHandler.ListDiseases)
		diseases.GET("/search", cfg.TaxonomyHandler.SearchDiseases)
		diseases.GET("/cui/:cui", cfg.TaxonomyHandler.GetDiseaseByCUI)
		diseases.GET("/:id", cfg.TaxonomyHandler.GetDisease)
		diseases.PATCH("/:id", cfg.TaxonomyHandler.UpdateDisease)
		diseases.DELETE("/:id", cfg.TaxonomyHandler.DeleteDisease)

		diseases.POST("/:id/symptoms", cfg.TaxonomyHandler.LinkSymptom)
		diseases.GET("/:id/symptoms", cfg.TaxonomyHandler.ListSymptomsForDisease)
	}
	symptoms := api.Group("/symptoms")
	{
		symptoms.POST("", cfg.TaxonomyHandler.CreateSymptom)
		symptoms.GET("", cfg.TaxonomyHandler.ListSymptoms)
		symptoms.GET("/search", cfg.TaxonomyHandler.SearchSymptoms)
		symptoms.GET("/cui/:cui", cfg.TaxonomyHandler.GetSymptomByCUI)
		symptoms.GET("/:id", cfg.TaxonomyHandler.GetSymptom)
		symptoms.PATCH("/:id", cfg.TaxonomyHandler.UpdateSymptom)
		symptoms.DELETE("/:id", cfg.TaxonomyHandler.DeleteSymptom)
		symptoms.GET("/:id/diseases", cfg.TaxonomyHandler.ListDiseasesForSymptom)
	}
	api.DELETE("/disease-symptom-associations/:id", cfg.TaxonomyHandler.UnlinkSymptom)

	// Consultation history
	conversations := api.Group("/conversations")
	{
		conversations.POST("", cfg.ConsultHandler.CreateConversation)
		conversations.GET("", cfg.ConsultHandler.ListConversations)
		conversations.GET("/:id", cfg.ConsultHandler.GetConversation)
		conversations.PATCH("/:id", cfg.ConsultHandler.UpdateConversation)
		conversations.DELETE("/:id", cfg.ConsultHandler.DeleteConversation)

		conversations.POST("/:id/messages", cfg.ConsultHandler.CreateMessage)
		conversations.GET("/:id/messages", cfg.ConsultHandler.ListMessages)
	}
	messages := api.Group("/messages")
	{
		messages.PATCH("/:id", cfg.ConsultHandler.UpdateMessage)
		messages.DELETE("/:id", cfg.ConsultHandler.DeleteMessage)
	}

	return router
}
