// Package connectors contains source system integrations. Each connector
// enumerates new items in one external system (Google Drive, Notion) and
// hands their raw bytes to the discovery pipeline.
package connectors
