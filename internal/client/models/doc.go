// Package models holds the client-side data model: the persisted session
// and recent-account records, and the request/response shapes of the
// mypage API.
package models
