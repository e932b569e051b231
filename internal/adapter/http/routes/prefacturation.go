package routes

import (
	"prefacturation_service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPrefacturations = "/prefacturations"
	PathStats           = "/stats"
	PathWebsocket       = "/ws"
)

func addPrefacturationRoutes(rg *gin.RouterGroup, prefacturationHandler *handlers.PrefacturationHandler, resolutionHandler *handlers.ResolutionHandler) {
	prefacturations := rg.Group(PathPrefacturations)
	{
		prefacturations.POST("", prefacturationHandler.Generate)
		prefacturations.GET("", prefacturationHandler.List)
		prefacturations.GET("/:id", prefacturationHandler.GetByID)
		prefacturations.POST("/:id/invoice", prefacturationHandler.AttachInvoice)
		prefacturations.POST("/:id/blocks/evaluate", prefacturationHandler.EvaluateBlocks)
		prefacturations.POST("/:id/validate", prefacturationHandler.Validate)
		prefacturations.POST("/:id/finalize", prefacturationHandler.Finalize)
		prefacturations.POST("/:id/export", prefacturationHandler.Export)
		prefacturations.POST("/:id/archive", prefacturationHandler.Archive)
		prefacturations.POST("/:id/carrier-timeout", prefacturationHandler.CarrierTimeout)

		prefacturations.POST("/:id/discrepancies/:index/accept", resolutionHandler.AcceptDiscrepancy)
		prefacturations.POST("/:id/discrepancies/:index/contest", resolutionHandler.ContestDiscrepancy)
		prefacturations.POST("/:id/discrepancies/:index/resolve", resolutionHandler.ResolveDiscrepancy)
		prefacturations.POST("/:id/unblock", resolutionHandler.Unblock)
		prefacturations.POST("/:id/blocks", resolutionHandler.RaiseManualBlock)
	}

	stats := rg.Group(PathStats)
	{
		stats.GET(PathPrefacturations, prefacturationHandler.Stats)
	}
}

func addRealtimeRoutes(rg *gin.RouterGroup, serveWs gin.HandlerFunc) {
	rg.GET(PathWebsocket, serveWs)
}
