package response

import "kino-booking/pkg/navigation"

// Linker turns a navigation state into an href.
type Linker func(navigation.State) string

func home(link Linker) string {
	return link(navigation.State{Page: navigation.PageNowShowing})
}
