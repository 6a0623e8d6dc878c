package markup_test

import (
	"fmt"

	"github.com/nomocas/mini-wysiwyg/markup"
)

func ExampleNormalizer_CleanHTML() {
	out, err := markup.New().CleanHTML(`<p>one</p><span style="color:red">two</span>`)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: <br>onetwo
}
