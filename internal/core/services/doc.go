// Package services implements the driving port interfaces.
//
// UploadOrchestrator owns the upload queue and submits it as one batch.
// DashboardPoller keeps health, documents and stats refreshed on a timer
// and handles the detail and delete actions.
//
// Both report progress through observers and only talk to the document
// service through driven.DocumentAPI.
package services
