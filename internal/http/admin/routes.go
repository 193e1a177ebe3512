package admin

import "github.com/labstack/echo/v4"

func RegisterRoutes(g *echo.Group, h *Handler) {

	// Customers
	g.GET("/customers", h.GetCustomers)
	g.GET("/customers/:id", h.GetCustomer)
	g.POST("/customers", h.CreateCustomer)
	g.PUT("/customers/:id", h.UpdateCustomer)
	g.DELETE("/customers/:id", h.DeleteCustomer)

	// Areas
	g.GET("/areas", h.GetAreas)
	g.GET("/areas/:id", h.GetArea)
	g.POST("/areas", h.CreateArea)
	g.PUT("/areas/:id", h.UpdateArea)
	g.DELETE("/areas/:id", h.DeleteArea)

	// Calculations
	g.GET("/calculations", h.GetCalculations)
	g.GET("/calculations/by-key/:key", h.GetCalculationByKey)
	g.GET("/calculations/:id", h.GetCalculation)
	g.POST("/calculations", h.CreateCalculation)
	g.PUT("/calculations/:id", h.UpdateCalculation)
	g.DELETE("/calculations/:id", h.DeleteCalculation)

	// Lookup
	g.GET("/lookup", h.GetLookups)
	g.GET("/lookup/choices/:key", h.GetChoices)
	g.GET("/lookup/:id", h.GetLookup)
	g.POST("/lookup", h.CreateLookup)
	g.PUT("/lookup/:id", h.UpdateLookup)
	g.DELETE("/lookup/:id", h.DeleteLookup)

	// Invoices
	g.GET("/invoices", h.GetInvoices)
	g.GET("/invoices/next-memo", h.NextMemo)
	g.GET("/invoices/:memo", h.GetInvoice)
	g.POST("/invoices", h.CreateInvoice)
	g.PUT("/invoices/:memo", h.UpdateInvoice)
	g.DELETE("/invoices/:memo", h.DeleteInvoice)

	// Services price list
	g.GET("/services", h.GetServices)
	g.GET("/services.xlsx", h.DownloadServices)

	// Import / export / backup
	g.GET("/export", h.Export)
	g.POST("/import", h.Import)
	g.GET("/backups", h.ListBackups)
	g.GET("/backups/:name", h.DownloadBackup)
	g.POST("/backup", h.BackupDatabase)

	// Backend status and credential
	g.GET("/tables", h.GetTables)
	g.GET("/credential", h.GetCredential)
	g.PUT("/credential", h.SaveCredential)
}
