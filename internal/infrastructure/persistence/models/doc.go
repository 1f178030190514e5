// Package models contains the persistence shapes of the shared document.
// These models are separate from domain records to keep the domain layer pure and free
// from storage concerns.
//
// Key Principles:
// 1. Domain records use decimals and calendar days; models keep JSON numbers and strings
// 2. Field names are camelCase so the stored document keeps its established shape
// 3. Mappers convert between domain records and persistence models
//
// Structure:
// - base.go: conversion helpers shared by every model
// - document_field.go: GORM row holding one top-level document field
// - ledger.go: entries and bills
// - partner.go: debts
// - catalog.go: product budgets
// - trade.go: comandas
// - metering.go: energy readings
package models
