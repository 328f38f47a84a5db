// Package events publishes memory score changes to interested handlers
// without coupling the memory service to them.
package events
