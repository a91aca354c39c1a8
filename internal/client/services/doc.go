// Package services contains the CRM workspace operations behind the
// console views: dashboard, customers, segments, campaigns, analytics,
// the AI assistant and the profile. Input is validated before any request
// is sent; every call goes through the authenticated REST client, so a 401
// anywhere ends the session.
package services
