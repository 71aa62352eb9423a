package database

import "testing"

func TestDSN(t *testing.T) {
	cases := []struct {
		name string
		user string
		pass string
		want string
	}{
		{
			name: "with password",
			user: "salon",
			pass: "s3cret",
			want: "salon:s3cret@tcp(db:3306)/salon_booking?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			name: "empty password omits the colon",
			user: "salon",
			pass: "",
			want: "salon@tcp(db:3306)/salon_booking?charset=utf8mb4&parseTime=true&loc=UTC",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dsn(tc.user, tc.pass, "db", "3306", "salon_booking")
			if got != tc.want {
				t.Fatalf("dsn = %q, want %q", got, tc.want)
			}
		})
	}
}
