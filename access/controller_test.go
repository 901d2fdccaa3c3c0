package access

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMaxController_Limit(t *testing.T) {
	tests := []struct {
		name    string
		Max     int64
		Current int64
		want    bool
		status  int
	}{
		{
			name:   "unlimited",
			Max:    0,
			want:   true,
			status: http.StatusOK,
		},
		{
			name:   "below-limit",
			Max:    2,
			want:   true,
			status: http.StatusOK,
		},
		{
			name:    "rejected",
			Max:     1,
			Current: 1,
			want:    false,
			status:  http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &MaxController{
				Max:     tt.Max,
				Current: tt.Current,
			}
			visited := false
			next := http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				visited = true
			})
			req := httptest.NewRequest(http.MethodGet, "/estimate", nil)
			rw := httptest.NewRecorder()

			c.Limit(next).ServeHTTP(rw, req)

			if visited != tt.want {
				t.Errorf("MaxController.Limit() ran handler = %t, want %t", visited, tt.want)
			}
			if rw.Code != tt.status {
				t.Errorf("MaxController.Limit() status = %d, want %d", rw.Code, tt.status)
			}
			if c.Current != tt.Current {
				t.Errorf("MaxController.Limit() current = %d, want %d", c.Current, tt.Current)
			}
		})
	}
}
