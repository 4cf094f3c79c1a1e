// framebench drives randomized concurrent allocate/free workloads against
// the framekit arena and compares the four synchronization disciplines.
package main

func main() {
	execute()
}
